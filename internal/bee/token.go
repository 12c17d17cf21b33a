package bee

// TokenStore is the single durable slot holding the bearer token between
// runs. It is written only on login, cleared on logout or auth rejection,
// and read at session initialization and on every outgoing request.
type TokenStore interface {
	// Load returns the persisted token, or "" when none is stored.
	// A missing slot is not an error.
	Load() (string, error)

	// Save persists the token, replacing any previous value.
	Save(token string) error

	// Clear removes the persisted token. Clearing an empty slot is a no-op.
	Clear() error
}
