package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeState struct {
	mu     sync.Mutex
	active bool
}

func (f *fakeState) BotActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeState) SetBotActive(active bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.active
	f.active = active
	return prev
}

type fakeToggler struct {
	err   error
	calls []bool
}

func (f *fakeToggler) ToggleBot(ctx context.Context, active bool) error {
	f.calls = append(f.calls, active)
	return f.err
}

func TestSetActive_PushesToBackend(t *testing.T) {
	state := &fakeState{active: true}
	toggler := &fakeToggler{}
	svc := NewService(state, toggler, nil)

	if err := svc.SetActive(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.BotActive() {
		t.Error("expected state off")
	}
	if len(toggler.calls) != 1 || toggler.calls[0] {
		t.Errorf("expected backend call with false, got %v", toggler.calls)
	}
}

func TestSetActive_RevertsOnBackendFailure(t *testing.T) {
	state := &fakeState{active: true}
	toggler := &fakeToggler{err: errors.New("backend down")}
	svc := NewService(state, toggler, nil)

	if err := svc.SetActive(context.Background(), false); err == nil {
		t.Fatal("expected error")
	}
	if !state.BotActive() {
		t.Error("expected state reverted to on")
	}
}

func TestHandler_SetFailureReturns502(t *testing.T) {
	state := &fakeState{active: true}
	toggler := &fakeToggler{err: errors.New("backend down")}
	h := NewHandler(NewService(state, toggler, nil), nil)

	body, _ := json.Marshal(stateView{Active: false})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["error"] != "Error de conexión al cambiar estado del bot." {
		t.Errorf("unexpected error message %q", resp["error"])
	}
}

func TestHandler_GetReflectsState(t *testing.T) {
	state := &fakeState{active: true}
	h := NewHandler(NewService(state, &fakeToggler{}, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var resp stateView
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Active {
		t.Error("expected active=true")
	}
}
