package bee

// DraftStore holds locally authored posts until they are published.
// Drafts are client-side content, not cached server state.
type DraftStore interface {
	// SaveDraft stores a draft. The caller supplies the ID and CreatedAt.
	SaveDraft(draft *Draft) error

	// FindDraft returns a draft by ID, or nil if it does not exist.
	FindDraft(id string) (*Draft, error)

	// ListDrafts returns all drafts, newest first.
	ListDrafts() ([]*Draft, error)

	// DeleteDraft removes a draft. Deleting a missing draft is a no-op.
	DeleteDraft(id string) error
}

// Journal records executed commands for local diagnostics. Mutating commands
// create a record on start and finish it with a status on exit.
type Journal interface {
	// CreateCommand starts a journal record and returns it with its ID set.
	CreateCommand(command, parameters string) (*CommandRecord, error)

	// FinishCommand closes a journal record with the given status
	// ("success" or "error").
	FinishCommand(id int64, status string) error

	// RecentCommands returns up to limit records, newest first.
	RecentCommands(limit int) ([]*CommandRecord, error)
}
