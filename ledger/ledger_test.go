package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/projecteru2/nsuuid/config"
	"github.com/projecteru2/nsuuid/types"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	conf := config.DefaultConfig()
	conf.RootDir = t.TempDir()
	l, err := New(conf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func record(id string, at time.Time) *types.Identifier {
	return &types.Identifier{ID: id, Version: 5, Variant: "RFC4122", Source: "content", CreatedAt: at}
}

var (
	idA = "2ed6657d-e927-568b-95e1-2665a8aea6a2"
	idB = "886313e1-3b8a-5372-9b90-0c9aee199e5d"
	idC = "2ed6aaaa-0000-5000-8000-000000000000"
)

// --- ResolveRef ---

func TestResolveRef(t *testing.T) {
	idx := &Index{}
	idx.Init()
	idx.Records[idA] = record(idA, time.Time{})
	idx.Records[idB] = record(idB, time.Time{})
	idx.Records[idC] = record(idC, time.Time{})

	tests := map[string]string{
		idA:               idA,
		"urn:uuid:" + idB: idB,
		"886":             idB,
		"2ED6657D":        idA,
	}
	for ref, want := range tests {
		got, err := ResolveRef(idx, ref)
		if err != nil {
			t.Fatalf("ResolveRef(%q): %v", ref, err)
		}
		if got != want {
			t.Errorf("ResolveRef(%q) = %s, want %s", ref, got, want)
		}
	}
	if _, err := ResolveRef(idx, "2ed6"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected ambiguity error, got %v", err)
	}
	if _, err := ResolveRef(idx, "88"); !errors.Is(err, ErrNotFound) {
		t.Errorf("short prefix: expected ErrNotFound, got %v", err)
	}
	if _, err := ResolveRef(idx, "ffff"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// --- Ledger ---

func TestLedger_AddListInspect(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	now := time.Now().UTC()

	added, err := l.Add(ctx, record(idB, now.Add(time.Second)), record(idA, now), nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	added, _ = l.Add(ctx, record(idA, now.Add(time.Hour)))
	if added != 0 {
		t.Errorf("duplicate add counted: %d", added)
	}

	all, err := l.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != idA || all[1].ID != idB {
		t.Fatalf("unexpected list order: %+v", all)
	}
	if !all[0].CreatedAt.Equal(now) {
		t.Errorf("first record overwritten: %v", all[0].CreatedAt)
	}

	got, err := l.Inspect(ctx, "886313")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if got.ID != idB {
		t.Errorf("Inspect = %s", got.ID)
	}
	if _, err := l.Inspect(ctx, "ffffff"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLedger_Delete(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	if _, err := l.Add(ctx, record(idA, time.Now()), record(idB, time.Now())); err != nil {
		t.Fatalf("Add: %v", err)
	}
	deleted, err := l.Delete(ctx, []string{"2ed6657d", "missing-ref"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != idA {
		t.Errorf("deleted = %v", deleted)
	}
	all, _ := l.List(ctx)
	if len(all) != 1 || all[0].ID != idB {
		t.Errorf("remaining = %+v", all)
	}
}

func TestLedger_ReopenSeesRecords(t *testing.T) {
	conf := config.DefaultConfig()
	conf.RootDir = t.TempDir()
	ctx := context.Background()
	first, err := New(conf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := first.Add(ctx, record(idA, time.Now())); err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := New(conf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := second.Inspect(ctx, idA); err != nil {
		t.Errorf("Inspect after reopen: %v", err)
	}
}
