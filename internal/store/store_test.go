package store

import (
	"bytes"
	"testing"
	"time"

	"rehearsals/internal/model"
)

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	it := model.New("Enhanced: evening wind down", time.Now())
	it.Audio = []byte{0xff, 0xf3, 0x01, 0x02, 0x03}

	idx := s.Add(it)
	if idx != 0 {
		t.Fatalf("expected first index 0; got %d", idx)
	}

	got, ok := s.Get(it.ID)
	if !ok {
		t.Fatalf("item not found by id %q", it.ID)
	}
	if !bytes.Equal(got.Audio, []byte{0xff, 0xf3, 0x01, 0x02, 0x03}) {
		t.Fatalf("audio changed on the way through the store: %v", got.Audio)
	}
	if got.Content != "Enhanced: evening wind down" {
		t.Fatalf("content changed: %q", got.Content)
	}
}

func TestStore_InsertionOrder(t *testing.T) {
	t.Parallel()

	s := New()
	now := time.Now()
	a := model.New("first", now)
	b := model.New("second", now)
	c := model.New("third", now)

	s.Add(a)
	s.Add(b)
	if idx := s.Add(c); idx != 2 {
		t.Fatalf("expected index 2 for third item; got %d", idx)
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 items; got %d", len(list))
	}
	for i, want := range []*model.Item{a, b, c} {
		if list[i].ID != want.ID {
			t.Fatalf("position %d: expected %q; got %q", i, want.ID, list[i].ID)
		}
	}
	if s.At(1).ID != b.ID {
		t.Fatalf("At(1): expected %q; got %q", b.ID, s.At(1).ID)
	}
	if s.At(3) != nil || s.At(-1) != nil {
		t.Fatalf("out-of-range At should return nil")
	}
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := New()
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("expected miss for unknown id")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}
