package app

// CommandRun tracks a CLI command that may write to the local journal.
// Runs are created in memory with ID=0. Only mutating commands persist
// them (giving them an auto-increment ID from the database).
type CommandRun struct {
	ID         int64
	Command    string
	Parameters string
	Status     string // "success" or "error"
}

// NewCommandRun creates a new in-memory command run.
func NewCommandRun(command, parameters string) *CommandRun {
	return &CommandRun{
		Command:    command,
		Parameters: parameters,
		Status:     "success",
	}
}

// Persisted returns true if this run has been saved to the journal.
func (r *CommandRun) Persisted() bool {
	return r.ID != 0
}
