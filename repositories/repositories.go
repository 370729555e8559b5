package repositories

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when an update or delete targets a log entry id
// that does not exist. Handlers must surface it explicitly, never as success.
var ErrNotFound = errors.New("log entry not found")

// Repositories struct holds all repository interfaces
type Repositories struct {
	Logs LogRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Logs: NewLogRepository(db),
	}
}
