package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dentalspace/clinic-admin-api/internal/webhook"
)

type fakeLister struct {
	mu    sync.Mutex
	resps []listResult
	calls int
}

type listResult struct {
	resp *webhook.ListResponse
	err  error
}

func (f *fakeLister) GetAppointments(ctx context.Context) (*webhook.ListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls >= len(f.resps) {
		return &webhook.ListResponse{}, nil
	}
	r := f.resps[f.calls]
	f.calls++
	return r.resp, r.err
}

func apt(id, title, phone, status string, start time.Time) webhook.Appointment {
	return webhook.Appointment{
		ID:    id,
		Title: title,
		Start: webhook.Time{Time: start},
		End:   webhook.Time{Time: start.Add(30 * time.Minute)},
		Resource: webhook.Resource{
			Phone:   phone,
			Status:  status,
			EventID: "ev-" + id,
		},
	}
}

func TestRefresh_SortsMostRecentFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	lister := &fakeLister{resps: []listResult{{resp: &webhook.ListResponse{
		Data: []webhook.Appointment{
			apt("a1", "Ana", "", "Agendada", base),
			apt("a2", "Berta", "", "Agendada", base.Add(2*time.Hour)),
			apt("a3", "Carla", "", "Agendada", base.Add(time.Hour)),
		},
	}}}}
	cache := NewCache(lister, nil, nil)

	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _, _ := cache.Snapshot("", "")
	if len(list) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Start.Time.After(list[i-1].Start.Time) {
			t.Errorf("list not sorted descending at index %d", i)
		}
	}
	if list[0].ID != "a2" {
		t.Errorf("expected most recent first, got %s", list[0].ID)
	}
}

func TestSnapshot_Filters(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	lister := &fakeLister{resps: []listResult{{resp: &webhook.ListResponse{
		Data: []webhook.Appointment{
			apt("a1", "Juan Pérez", "8095551234", "Agendada", base),
			apt("a2", "María López", "8295559999", "Cancelada", base.Add(time.Hour)),
			apt("a3", "juanita gómez", "8495550000", "Agendada", base.Add(2*time.Hour)),
		},
	}}}}
	cache := NewCache(lister, nil, nil)
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _, _ := cache.Snapshot("Juan", "")
	if len(list) != 2 {
		t.Fatalf("expected case-insensitive name match on 2 records, got %d", len(list))
	}

	list, _, _ = cache.Snapshot("555123", "")
	if len(list) != 1 || list[0].ID != "a1" {
		t.Fatalf("expected phone substring match on a1, got %v", list)
	}

	list, _, _ = cache.Snapshot("", StatusCancelada)
	if len(list) != 1 || list[0].ID != "a2" {
		t.Fatalf("expected exact status match on a2, got %v", list)
	}

	list, _, _ = cache.Snapshot("", StatusAll)
	if len(list) != 3 {
		t.Fatalf("expected all records with status=all, got %d", len(list))
	}

	list, _, _ = cache.Snapshot("Juan", StatusCancelada)
	if len(list) != 0 {
		t.Fatalf("expected both filters to apply, got %d records", len(list))
	}
}

func TestRefresh_ErrorKeepsPreviousSnapshot(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	lister := &fakeLister{resps: []listResult{
		{resp: &webhook.ListResponse{Data: []webhook.Appointment{apt("a1", "Ana", "", "Agendada", base)}}},
		{err: errors.New("backend down")},
	}}
	cache := NewCache(lister, nil, nil)

	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	list, lastErr, _ := cache.Snapshot("", "")
	if len(list) != 1 {
		t.Errorf("expected stale snapshot to survive, got %d records", len(list))
	}
	if lastErr == nil {
		t.Error("expected last error to be recorded")
	}
}

func TestRefresh_SyncsBotState(t *testing.T) {
	off := false
	lister := &fakeLister{resps: []listResult{
		{resp: &webhook.ListResponse{BotActive: &off}},
		{resp: &webhook.ListResponse{}},
	}}
	cache := NewCache(lister, nil, nil)

	if !cache.BotActive() {
		t.Fatal("expected bot active by default")
	}
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.BotActive() {
		t.Error("expected bot state synced to false")
	}

	// A response without the flag leaves the state alone.
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.BotActive() {
		t.Error("expected bot state unchanged when flag absent")
	}
}

// blockingLister lets a test hold the first fetch open while a second fetch
// starts and finishes, reproducing overlapping in-flight refreshes.
type blockingLister struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	first   *webhook.ListResponse
	second  *webhook.ListResponse
}

func (b *blockingLister) GetAppointments(ctx context.Context) (*webhook.ListResponse, error) {
	b.mu.Lock()
	b.calls++
	call := b.calls
	b.mu.Unlock()

	if call == 1 {
		<-b.release
		return b.first, nil
	}
	return b.second, nil
}

func TestRefresh_DropsStaleOverlappingResponse(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	lister := &blockingLister{
		release: make(chan struct{}),
		first:   &webhook.ListResponse{Data: []webhook.Appointment{apt("old", "Vieja", "", "Agendada", base)}},
		second:  &webhook.ListResponse{Data: []webhook.Appointment{apt("new", "Nueva", "", "Agendada", base)}},
	}
	cache := NewCache(lister, nil, nil)

	done := make(chan error, 1)
	go func() {
		done <- cache.Refresh(context.Background())
	}()

	// Wait for the first fetch to be in flight, then let a second one win.
	for {
		lister.mu.Lock()
		started := lister.calls == 1
		lister.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	close(lister.release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _, _ := cache.Snapshot("", "")
	if len(list) != 1 || list[0].ID != "new" {
		t.Fatalf("expected newer response to survive, got %v", list)
	}
}

func TestSetBotActive_ReturnsPrevious(t *testing.T) {
	cache := NewCache(&fakeLister{}, nil, nil)

	if prev := cache.SetBotActive(false); !prev {
		t.Error("expected previous state true")
	}
	if prev := cache.SetBotActive(true); prev {
		t.Error("expected previous state false")
	}
}
