package models

import "time"

// Result values recorded on log entries. CRUD mutations use created/updated;
// the two login results are written by the audit sink.
const (
	ResultCreated      = "created"
	ResultUpdated      = "updated"
	ResultLoginSuccess = "admin_login_success"
	ResultLoginFailed  = "login_failed"
)

// LogEntry represents a single row in the logs table
type LogEntry struct {
	ID     int64  `json:"id"`
	Info   string `json:"info"`
	Result string `json:"result"`
	Time   string `json:"time"`
}

// TimestampLayout is the human-readable local timestamp written to the time
// column. It is display-oriented and not sortable; rows are ordered by id.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Timestamp formats the current local time for storage on a log entry
func Timestamp() string {
	return time.Now().Format(TimestampLayout)
}
