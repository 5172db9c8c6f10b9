package preview

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStore_CreateAndGet(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("X", 3600))
	s := NewStore()
	s.nowFunc = func() time.Time { return now }

	id, p, err := s.Create("<h1>hi</h1>", "Greeting")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a UUID id, got %q: %v", id, err)
	}
	if p.HTML != "<h1>hi</h1>" || p.Title != "Greeting" || p.IsPublished {
		t.Errorf("unexpected preview: %+v", p)
	}
	if !p.CreatedAt.Equal(now) || p.CreatedAt.Location() != time.UTC {
		t.Errorf("expected CreatedAt %v in UTC, got %v", now, p.CreatedAt)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != p {
		t.Errorf("Get: want %+v, got %+v", p, got)
	}
}

func TestStore_CreateDefaultsTitle(t *testing.T) {
	s := NewStore()
	_, p, err := s.Create("<p>x</p>", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Title != DefaultTitle {
		t.Errorf("expected title %q, got %q", DefaultTitle, p.Title)
	}
}

func TestStore_CreateRequiresContent(t *testing.T) {
	s := NewStore()
	if _, _, err := s.Create("", "Empty"); !errors.Is(err, ErrMissingContent) {
		t.Errorf("expected ErrMissingContent, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("nothing should be stored, got %d", s.Len())
	}
}

func TestStore_GetUnknown(t *testing.T) {
	s := NewStore()
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Publish(t *testing.T) {
	s := NewStore()
	id, _, _ := s.Create("<p>x</p>", "")

	p, err := s.Publish(id)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !p.IsPublished {
		t.Error("expected published preview")
	}
	got, _ := s.Get(id)
	if !got.IsPublished {
		t.Error("publish should be persisted in the store")
	}
	if _, err := s.Publish(id); err != nil {
		t.Errorf("publishing twice should succeed, got %v", err)
	}
	if _, err := s.Publish("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ConcurrentCreate(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, _, err := s.Create(fmt.Sprintf("<p>%d</p>", i), "")
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			if _, err := s.Get(id); err != nil {
				t.Errorf("Get: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Errorf("expected 50 previews, got %d", s.Len())
	}
}
