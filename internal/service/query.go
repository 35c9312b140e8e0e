package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aiteam4i/AITeamInterns/internal/agent"
	"github.com/aiteam4i/AITeamInterns/internal/repository"
)

var (
	ErrQuestionRequired    = errors.New("question is required")
	ErrDesignationNotFound = errors.New("user or designation not found")
)

// QueryService relays an authenticated employee's question to the external
// NL agent.
type QueryService struct {
	store UserStore
	agent agent.Agent
}

// NewQueryService creates a new QueryService.
func NewQueryService(store UserStore, ag agent.Agent) *QueryService {
	return &QueryService{store: store, agent: ag}
}

// Ask resolves the caller's email and designation fresh from the store and
// forwards the question to the agent. The token's embedded identity is never
// trusted for the designation, which may have been reassigned since issuance.
// The agent's JSON payload is returned uninterpreted.
func (s *QueryService) Ask(ctx context.Context, userID int64, question string) (json.RawMessage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrQuestionRequired
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrDesignationNotFound
		}
		return nil, err
	}
	if user.Designation == "" {
		return nil, ErrDesignationNotFound
	}

	return s.agent.Ask(ctx, agent.Request{
		Question:    question,
		Email:       user.Email,
		Designation: user.Designation,
	})
}
