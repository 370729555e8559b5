package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"logpanel/models"
	"logpanel/services"
)

// LogsController handles the admin CRUD surface over the log table
type LogsController struct {
	services *services.Services
}

// NewLogsController creates a new logs controller
func NewLogsController(services *services.Services) *LogsController {
	return &LogsController{
		services: services,
	}
}

// crudResponse is the envelope returned by every mutating CRUD route. Data
// always carries the authoritative full list, not a delta.
type crudResponse struct {
	Success bool              `json:"success"`
	Data    []models.LogEntry `json:"data"`
}

// Data handles GET /data and returns all entries newest first
func (c *LogsController) Data(w http.ResponseWriter, r *http.Request) {
	entries, err := c.services.Logs.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Save handles POST /save
func (c *LogsController) Save(w http.ResponseWriter, r *http.Request) {
	info := bodyField(r, "info")

	entries, err := c.services.Logs.Create(r.Context(), info)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, crudResponse{Success: true, Data: entries})
}

// Edit handles PUT /edit/{id}
func (c *LogsController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entries, err := c.services.Logs.Update(r.Context(), id, bodyField(r, "newInfo"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, crudResponse{Success: true, Data: entries})
}

// Delete handles DELETE /delete/{id}
func (c *LogsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entries, err := c.services.Logs.Delete(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, crudResponse{Success: true, Data: entries})
}

// entryID parses the id route parameter, writing a failure response when it
// is not a number
func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid log entry ID")
		return 0, false
	}
	return id, true
}

// bodyField reads a named string field from a JSON or form-encoded request
// body. A missing or non-string field is treated as empty, mirroring the
// form behavior.
func bodyField(r *http.Request, name string) string {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return ""
		}
		value, _ := body[name].(string)
		return value
	}

	return r.FormValue(name)
}
