package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aiteam4i/AITeamInterns/internal/agent"
	"github.com/aiteam4i/AITeamInterns/internal/model"
)

// fakeAgent records the request it receives and returns canned results.
type fakeAgent struct {
	lastReq agent.Request
	result  json.RawMessage
	err     error
}

func (f *fakeAgent) Ask(ctx context.Context, req agent.Request) (json.RawMessage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func seedUser(t *testing.T, store *fakeStore, designation string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        "ada@x.com",
		PasswordHash: "irrelevant",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Designation:  designation,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func TestAsk_EmptyQuestion(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "Engineer")
	svc := NewQueryService(store, &fakeAgent{})

	for _, question := range []string{"", "   "} {
		_, err := svc.Ask(context.Background(), user.ID, question)
		if !errors.Is(err, ErrQuestionRequired) {
			t.Errorf("Ask(%q) error = %v, want ErrQuestionRequired", question, err)
		}
	}
}

func TestAsk_UnknownUser(t *testing.T) {
	svc := NewQueryService(newFakeStore(), &fakeAgent{})

	_, err := svc.Ask(context.Background(), 999, "how many orders last month?")
	if !errors.Is(err, ErrDesignationNotFound) {
		t.Errorf("Ask() error = %v, want ErrDesignationNotFound", err)
	}
}

func TestAsk_MissingDesignation(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "")
	svc := NewQueryService(store, &fakeAgent{})

	_, err := svc.Ask(context.Background(), user.ID, "how many orders last month?")
	if !errors.Is(err, ErrDesignationNotFound) {
		t.Errorf("Ask() error = %v, want ErrDesignationNotFound", err)
	}
}

// Identity is re-read from the store, then handed to the agent alongside the
// question.
func TestAsk_ForwardsStoredIdentity(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "Engineer")

	ag := &fakeAgent{result: json.RawMessage(`{"result":"42"}`)}
	svc := NewQueryService(store, ag)

	result, err := svc.Ask(context.Background(), user.ID, "how many orders last month?")
	if err != nil {
		t.Fatalf("Ask() unexpected error: %v", err)
	}

	if string(result) != `{"result":"42"}` {
		t.Errorf("Ask() result = %s, want agent payload verbatim", result)
	}
	if ag.lastReq.Question != "how many orders last month?" {
		t.Errorf("agent question = %q, want original question", ag.lastReq.Question)
	}
	if ag.lastReq.Email != "ada@x.com" {
		t.Errorf("agent email = %q, want %q", ag.lastReq.Email, "ada@x.com")
	}
	if ag.lastReq.Designation != "Engineer" {
		t.Errorf("agent designation = %q, want %q", ag.lastReq.Designation, "Engineer")
	}
}

func TestAsk_PropagatesAgentError(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "Engineer")

	agentErr := &agent.ExecError{Details: "Traceback (most recent call last): boom"}
	svc := NewQueryService(store, &fakeAgent{err: agentErr})

	_, err := svc.Ask(context.Background(), user.ID, "how many orders last month?")

	var execErr *agent.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("Ask() error = %v, want *agent.ExecError", err)
	}
	if execErr.Details != agentErr.Details {
		t.Errorf("ExecError details = %q, want diagnostics preserved", execErr.Details)
	}
}
