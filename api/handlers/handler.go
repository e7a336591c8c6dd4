package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jusunglee/easyrider-go/internal/models"
	"github.com/jusunglee/easyrider-go/internal/report"
	"github.com/jusunglee/easyrider-go/internal/schema"
	"github.com/jusunglee/easyrider-go/internal/timetable"
	"github.com/jusunglee/easyrider-go/pkg/easyrider"
)

// Handler handles HTTP requests
type Handler struct {
	checker  easyrider.Checker
	maxBytes int64
}

// NewHandler creates a new HTTP handler.
// Request bodies larger than maxBytes are rejected, 0 means no limit.
func NewHandler(checker easyrider.Checker, maxBytes int64) *Handler {
	return &Handler{checker: checker, maxBytes: maxBytes}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/checks", h.handleChecks).Methods("GET")
	r.HandleFunc("/checks/{check}", h.handleCheck).Methods("POST")
}

// Response wraps API responses
type Response struct {
	Data   interface{} `json:"data"`
	Report []string    `json:"report,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string   `json:"error"`
	Report []string `json:"report,omitempty"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"title":  "easyrider-go",
		"readme": "POST a JSON array of stop records to /checks/{check}",
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleChecks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, Response{Data: easyrider.Checks})
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	check := mux.Vars(r)["check"]

	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	batch, err := models.DecodeBatch(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Batch too large", http.StatusRequestEntityTooLarge, nil)
			return
		}
		h.writeError(w, "Invalid batch: "+err.Error(), http.StatusBadRequest, nil)
		return
	}

	result, err := h.checker.Run(check, batch)
	if err != nil {
		h.writeCheckError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, Response{Data: result.Data, Report: result.Report})
}

func (h *Handler) writeCheckError(w http.ResponseWriter, err error) {
	var (
		dup        *timetable.DuplicateRoleError
		incomplete *timetable.IncompleteLineError
	)

	switch {
	case errors.Is(err, easyrider.ErrUnknownCheck):
		h.writeError(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, schema.ErrMalformedRecord):
		h.writeError(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, easyrider.ErrTooManyRecords):
		h.writeError(w, err.Error(), http.StatusRequestEntityTooLarge, nil)
	case errors.As(err, &dup), errors.As(err, &incomplete):
		h.writeError(w, err.Error(), http.StatusUnprocessableEntity, report.Fatal(err))
	default:
		h.writeError(w, err.Error(), http.StatusInternalServerError, nil)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError, nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int, lines []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Report: lines})
}
