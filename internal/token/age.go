package token

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"bee-go/internal/bee"
)

// AgeStore persists the token age-encrypted to an X25519 recipient.
// The recipient file is plaintext; the identity file is the secret that
// unlocks the slot and is written 0600.
type AgeStore struct {
	path          string
	recipientPath string
	identityPath  string
}

// NewAgeStore creates an AgeStore. The key pair must already exist
// (see Setup).
func NewAgeStore(path, recipientPath, identityPath string) *AgeStore {
	return &AgeStore{
		path:          path,
		recipientPath: recipientPath,
		identityPath:  identityPath,
	}
}

// Setup generates a new X25519 key pair and writes both halves to the
// configured paths. Fails if either file already exists.
func (s *AgeStore) Setup() error {
	for _, p := range []string{s.recipientPath, s.identityPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("key file already exists at %s", p)
		}
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.recipientPath), 0700); err != nil {
		return fmt.Errorf("creating recipient directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.identityPath), 0700); err != nil {
		return fmt.Errorf("creating identity directory: %w", err)
	}

	if err := os.WriteFile(s.recipientPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		return fmt.Errorf("writing recipient: %w", err)
	}
	if err := os.WriteFile(s.identityPath, []byte(identity.String()+"\n"), 0600); err != nil {
		return fmt.Errorf("writing identity: %w", err)
	}
	return nil
}

// IsConfigured returns true if both key files exist.
func (s *AgeStore) IsConfigured() bool {
	if _, err := os.Stat(s.recipientPath); err != nil {
		return false
	}
	if _, err := os.Stat(s.identityPath); err != nil {
		return false
	}
	return true
}

// Load decrypts and returns the persisted token. A missing slot yields ""
// without error.
func (s *AgeStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}

	identity, err := s.loadIdentity()
	if err != nil {
		return "", err
	}

	decReader, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return "", fmt.Errorf("decrypting token: %w", err)
	}

	plaintext, err := io.ReadAll(decReader)
	if err != nil {
		return "", fmt.Errorf("reading decrypted token: %w", err)
	}
	return strings.TrimSpace(string(plaintext)), nil
}

// Save encrypts the token to the recipient and writes it atomically.
func (s *AgeStore) Save(token string) error {
	recipient, err := s.loadRecipient()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(w, token); err != nil {
		return fmt.Errorf("encrypting token: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}

	return writeFileAtomic(s.path, buf.Bytes())
}

// Clear removes the token file. A missing file is not an error.
func (s *AgeStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// loadRecipient reads the recipient file and parses it.
func (s *AgeStore) loadRecipient() (age.Recipient, error) {
	data, err := os.ReadFile(s.recipientPath)
	if err != nil {
		return nil, fmt.Errorf("reading recipient: %w", err)
	}

	recipients, err := age.ParseRecipients(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing recipient: %w", err)
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients found in %s", s.recipientPath)
	}
	return recipients[0], nil
}

// loadIdentity reads the identity file and parses it.
func (s *AgeStore) loadIdentity() (age.Identity, error) {
	data, err := os.ReadFile(s.identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity: %w", err)
	}

	identities, err := age.ParseIdentities(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing identity: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("no identities found in %s", s.identityPath)
	}
	return identities[0], nil
}

// Compile-time check that AgeStore implements bee.TokenStore
var _ bee.TokenStore = (*AgeStore)(nil)
