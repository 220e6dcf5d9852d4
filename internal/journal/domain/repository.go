package domain

// ListFilter narrows List results.
type ListFilter struct {
	// State filters runs by state. Empty includes all states.
	State RunState

	// Limit restricts the number of runs returned. 0 means no limit.
	Limit int
}

// RunRepository persists runs.
type RunRepository interface {
	// Save inserts a run when ID() == 0 (and assigns the ID) or updates it.
	Save(run *Run) error

	// FindByGUID returns RunNotFoundError when no run matches.
	FindByGUID(guid string) (*Run, error)

	// List returns runs newest first.
	List(filter ListFilter) ([]*Run, error)

	// Close releases any resources held by the repository.
	Close() error
}
