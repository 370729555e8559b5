package services

import (
	"context"
	"fmt"

	"logpanel/models"
	"logpanel/repositories"
)

// Info prefixes mark how an entry's text came to be. The prefixed form is
// canonical: raw text is never stored without its provenance marker.
const (
	createdPrefix = "Info: "
	editedPrefix  = "Edited: "
	loginPrefix   = "Login -> User: "
)

// LogService interface defines log console business logic
type LogService interface {
	List(ctx context.Context) ([]models.LogEntry, error)
	Create(ctx context.Context, info string) ([]models.LogEntry, error)
	Update(ctx context.Context, id int64, newInfo string) ([]models.LogEntry, error)
	Delete(ctx context.Context, id int64) ([]models.LogEntry, error)
	RecordLoginAttempt(ctx context.Context, username string, success bool) error
}

// logService implements LogService interface
type logService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

// List retrieves all log entries, newest first
func (s *logService) List(ctx context.Context) ([]models.LogEntry, error) {
	return s.logRepo.List(ctx)
}

// Create stores a new entry with the created prefix and returns the
// refreshed full list
func (s *logService) Create(ctx context.Context, info string) ([]models.LogEntry, error) {
	entry := &models.LogEntry{
		Info:   createdPrefix + info,
		Result: models.ResultCreated,
		Time:   models.Timestamp(),
	}

	entries, err := s.logRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create log entry: %w", err)
	}

	return entries, nil
}

// Update replaces an entry's text with the edited prefix, refreshes its
// timestamp and returns the refreshed full list
func (s *logService) Update(ctx context.Context, id int64, newInfo string) ([]models.LogEntry, error) {
	if id <= 0 {
		return nil, repositories.ErrNotFound
	}
	return s.logRepo.Update(ctx, id, editedPrefix+newInfo, models.ResultUpdated, models.Timestamp())
}

// Delete removes an entry and returns the refreshed full list
func (s *logService) Delete(ctx context.Context, id int64) ([]models.LogEntry, error) {
	if id <= 0 {
		return nil, repositories.ErrNotFound
	}
	return s.logRepo.Delete(ctx, id)
}

// RecordLoginAttempt appends one audit entry per login attempt. Only the
// attempted username and the outcome are stored, never the password.
func (s *logService) RecordLoginAttempt(ctx context.Context, username string, success bool) error {
	result := models.ResultLoginFailed
	if success {
		result = models.ResultLoginSuccess
	}

	entry := &models.LogEntry{
		Info:   loginPrefix + username,
		Result: result,
		Time:   models.Timestamp(),
	}

	if _, err := s.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}

	return nil
}
