package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aiteam4i/AITeamInterns/internal/agent"
	"github.com/aiteam4i/AITeamInterns/internal/middleware"
	"github.com/aiteam4i/AITeamInterns/internal/model"
	"github.com/aiteam4i/AITeamInterns/internal/service"
)

// QueryHandler handles HTTP requests for the NL query relay.
type QueryHandler struct {
	service *service.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(svc *service.QueryService) *QueryHandler {
	return &QueryHandler{service: svc}
}

// HandleQuery handles POST /api/query requests. On success the agent's JSON
// payload is written to the response verbatim.
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	result, err := h.service.Ask(r.Context(), userID, req.Question)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}

// writeQueryError maps relay failures to HTTP responses. Agent diagnostics
// are surfaced verbatim in the details field.
func (h *QueryHandler) writeQueryError(w http.ResponseWriter, err error) {
	var execErr *agent.ExecError
	var parseErr *agent.ParseError

	switch {
	case errors.Is(err, service.ErrQuestionRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrDesignationNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, agent.ErrTimeout):
		writeJSON(w, http.StatusInternalServerError, errorResponse(err.Error()))
	case errors.As(err, &execErr):
		writeJSON(w, http.StatusInternalServerError,
			errorDetailsResponse("error running agent script", execErr.Details))
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusInternalServerError,
			errorDetailsResponse("failed to parse agent response", parseErr.Raw))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
