package store

import (
	"context"
	"testing"
)

type themeDoc struct {
	Theme string `json:"theme"`
}

func TestMemoryRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	key := UserKey(KeyThemePfx, "u-1")
	if err := s.Set(ctx, key, themeDoc{Theme: "dark"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got themeDoc
	if err := s.Get(ctx, key, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Theme != "dark" {
		t.Fatalf("got theme %q, want dark", got.Theme)
	}
}

func TestMemoryMissingKey(t *testing.T) {
	s := NewMemory()
	var got themeDoc
	if err := s.Get(context.Background(), "nope", &got); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDeleteAndClear(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_ = s.Set(ctx, KeyProducts, []string{"a"})
	_ = s.Set(ctx, KeyCategories, []string{"b"})

	if err := s.Delete(ctx, KeyProducts); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var dest []string
	if err := s.Get(ctx, KeyProducts, &dest); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Get(ctx, KeyCategories, &dest); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}
