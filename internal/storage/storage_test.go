package storage

import (
	"context"
	"testing"
	"time"

	"github.com/rsrinivasan/hackradar/internal/event"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeEvent(title, link, date string) *event.Event {
	e := event.New(title, link, "Devpost")
	e.Date = date
	return e
}

func TestUpsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []*event.Event{
		makeEvent("B Hack", "https://example.com/b", "2026-05-01"),
		makeEvent("A Hack", "https://example.com/a", "2026-04-18"),
	}
	n, err := s.Upsert(ctx, events, 200)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows written, got %d", n)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Title != "A Hack" {
		t.Errorf("expected date ordering, first = %q", got[0].Title)
	}
}

func TestUpsertRefreshesExistingLink(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	orig := makeEvent("SomeHack", "https://example.com/x", "2026-04-18")
	if _, err := s.Upsert(ctx, []*event.Event{orig}, 200); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	updated := makeEvent("SomeHack (extended)", "https://example.com/x", "2026-04-25")
	if _, err := s.Upsert(ctx, []*event.Event{updated}, 200); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("same link should collapse to 1 row, got %d", len(got))
	}
	if got[0].Title != "SomeHack (extended)" || got[0].Date != "2026-04-25" {
		t.Errorf("row not refreshed: %+v", got[0])
	}
}

func TestUpsertSmallBatches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var events []*event.Event
	for i := 0; i < 5; i++ {
		events = append(events, makeEvent("Hack", "https://example.com/"+string(rune('a'+i)), "2026-04-18"))
	}
	n, err := s.Upsert(ctx, events, 2)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 rows across batches, got %d", n)
	}
}

func TestDeleteExpired(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []*event.Event{
		makeEvent("Past", "https://example.com/past", "2026-01-10"),
		makeEvent("Today", "https://example.com/today", "2026-01-15"),
		makeEvent("Future", "https://example.com/future", "2026-04-18"),
	}
	if _, err := s.Upsert(ctx, events, 200); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	today := time.Date(2026, time.January, 15, 8, 0, 0, 0, time.UTC)
	deleted, err := s.DeleteExpired(ctx, today)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 expired row deleted, got %d", deleted)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected today and future rows kept, got %d", n)
	}
}

func TestModeRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := makeEvent("Offline Hack", "https://example.com/offline", "2026-04-18")
	e.Offline = true
	if _, err := s.Upsert(ctx, []*event.Event{e}, 200); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || !got[0].Offline {
		t.Error("offline mode lost in round trip")
	}
}
