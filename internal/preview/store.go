package preview

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is used when a preview is saved without a title.
const DefaultTitle = "Untitled Preview"

var (
	// ErrNotFound is returned for unknown preview IDs.
	ErrNotFound = errors.New("preview not found")
	// ErrMissingContent is returned when a preview is saved without HTML.
	ErrMissingContent = errors.New("missing preview content")
)

// Preview is rendered chat output the frontend can view, publish or share.
type Preview struct {
	HTML        string    `json:"html"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store keeps previews in process memory; they are lost on restart.
type Store struct {
	mu       sync.RWMutex
	previews map[string]Preview
	newID    func() string
	nowFunc  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		previews: make(map[string]Preview),
		newID:    uuid.NewString,
		nowFunc:  time.Now,
	}
}

// Create saves html under a new ID. An empty title becomes DefaultTitle.
func (s *Store) Create(html, title string) (string, Preview, error) {
	if html == "" {
		return "", Preview{}, ErrMissingContent
	}
	if title == "" {
		title = DefaultTitle
	}
	p := Preview{
		HTML:      html,
		Title:     title,
		CreatedAt: s.nowFunc().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	s.previews[id] = p
	return id, p, nil
}

// Get returns the preview stored under id.
func (s *Store) Get(id string) (Preview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.previews[id]
	if !ok {
		return Preview{}, ErrNotFound
	}
	return p, nil
}

// Publish marks the preview as published. Publishing twice is a no-op.
func (s *Store) Publish(id string) (Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.previews[id]
	if !ok {
		return Preview{}, ErrNotFound
	}
	p.IsPublished = true
	s.previews[id] = p
	return p, nil
}

// Len reports the number of stored previews.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.previews)
}
