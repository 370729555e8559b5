package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"logpanel/models"
)

// LogRepository interface defines log entry database operations. Every
// mutating operation returns the refreshed full list (newest first) read in
// the same transaction as the mutation, so callers always see the exact
// state their write produced.
type LogRepository interface {
	List(ctx context.Context) ([]models.LogEntry, error)
	Create(ctx context.Context, entry *models.LogEntry) ([]models.LogEntry, error)
	Update(ctx context.Context, id int64, info, result, timestamp string) ([]models.LogEntry, error)
	Delete(ctx context.Context, id int64) ([]models.LogEntry, error)
}

// logRepository implements LogRepository on SQLite
type logRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const listQuery = `
	SELECT id, info, result, time
	FROM logs
	ORDER BY id DESC
`

// List retrieves all log entries, newest first
func (r *logRepository) List(ctx context.Context) ([]models.LogEntry, error) {
	return listEntries(ctx, r.db)
}

func listEntries(ctx context.Context, q queryer) ([]models.LogEntry, error) {
	rows, err := q.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.ID, &entry.Info, &entry.Result, &entry.Time); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log entries: %w", err)
	}

	return entries, nil
}

// Create inserts a new log entry and returns the refreshed list
func (r *logRepository) Create(ctx context.Context, entry *models.LogEntry) ([]models.LogEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO logs (info, result, time) VALUES (?, ?, ?)`,
		entry.Info, entry.Result, entry.Time,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ID: %w", err)
	}
	entry.ID = id

	entries, err := listEntries(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, nil
}

// Update replaces info, result and time on an existing entry and returns the
// refreshed list. Returns ErrNotFound when the id does not exist.
func (r *logRepository) Update(ctx context.Context, id int64, info, result, timestamp string) ([]models.LogEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE logs SET info = ?, result = ?, time = ? WHERE id = ?`,
		info, result, timestamp, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update log entry: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	entries, err := listEntries(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, nil
}

// Delete removes an entry by id and returns the refreshed list. Returns
// ErrNotFound when the id does not exist.
func (r *logRepository) Delete(ctx context.Context, id int64) ([]models.LogEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete log entry: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	entries, err := listEntries(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, nil
}
