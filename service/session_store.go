package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"outfit-studio/checkout"
	"outfit-studio/models"
	"outfit-studio/outfit"
)

// ErrNoBuilderSession is returned when a tab has not created a base avatar yet
var ErrNoBuilderSession = errors.New("no avatar session: create a base avatar first")

// BuilderSession is the avatar-building state owned by one browser tab
type BuilderSession struct {
	Avatar models.BaseAvatarConfig
	Slots  *outfit.Slots
}

type builderEntry struct {
	mu        sync.Mutex
	session   *BuilderSession
	expiresAt time.Time
}

type handoffEntry struct {
	payload   models.OutfitPayload
	expiresAt time.Time
}

type summaryEntry struct {
	summary   *checkout.Summary
	expiresAt time.Time
}

// SessionStore keeps tab-scoped state: the builder session, the one-shot outfit
// handoff and the checkout summary loaded from it. Entries expire after ttl.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	builders  map[string]*builderEntry
	handoffs  map[string]handoffEntry
	summaries map[string]summaryEntry
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:       ttl,
		now:       time.Now,
		builders:  make(map[string]*builderEntry),
		handoffs:  make(map[string]handoffEntry),
		summaries: make(map[string]summaryEntry),
	}
}

// StartBuilder begins a fresh builder session for the tab, discarding any previous
// avatar and outfit.
func (s *SessionStore) StartBuilder(tabID string, avatar models.BaseAvatarConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builders[tabID] = &builderEntry{
		session:   &BuilderSession{Avatar: avatar, Slots: outfit.NewSlots()},
		expiresAt: s.now().Add(s.ttl),
	}
	log.Printf("🧍 StartBuilder: tab=%s avatar=%s", tabID, avatar.ID)
}

// WithBuilder runs fn with exclusive access to the tab's builder session.
// Calls for the same tab are serialized; the session's expiry is refreshed.
func (s *SessionStore) WithBuilder(tabID string, fn func(*BuilderSession) error) error {
	s.mu.Lock()
	entry, exists := s.builders[tabID]
	if exists && s.now().After(entry.expiresAt) {
		delete(s.builders, tabID)
		exists = false
	}
	if exists {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Unlock()

	if !exists {
		return ErrNoBuilderSession
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// EndBuilder discards the tab's builder session
func (s *SessionStore) EndBuilder(tabID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.builders, tabID)
}

// PutHandoff stores the finalized outfit for the tab's checkout screen.
// A newer handoff replaces an unread one.
func (s *SessionStore) PutHandoff(tabID string, payload models.OutfitPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handoffs[tabID] = handoffEntry{payload: payload, expiresAt: s.now().Add(s.ttl)}
	log.Printf("📦 PutHandoff: tab=%s items=%d", tabID, len(payload.Items))
}

// TakeHandoff returns and removes the tab's pending handoff.
// Returns nil when there is none.
func (s *SessionStore) TakeHandoff(tabID string) *models.OutfitPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.handoffs[tabID]
	if !exists {
		return nil
	}
	delete(s.handoffs, tabID)
	if s.now().After(entry.expiresAt) {
		log.Printf("⌛ TakeHandoff: tab=%s handoff expired", tabID)
		return nil
	}
	return &entry.payload
}

// PutSummary keeps the checkout summary loaded for the tab
func (s *SessionStore) PutSummary(tabID string, summary *checkout.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[tabID] = summaryEntry{summary: summary, expiresAt: s.now().Add(s.ttl)}
}

// Summary returns the checkout summary loaded for the tab, or nil
func (s *SessionStore) Summary(tabID string) *checkout.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.summaries[tabID]
	if !exists {
		return nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.summaries, tabID)
		return nil
	}
	return entry.summary
}

// Sweep removes every expired entry and returns how many were dropped
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for tabID, entry := range s.builders {
		if now.After(entry.expiresAt) {
			delete(s.builders, tabID)
			removed++
		}
	}
	for tabID, entry := range s.handoffs {
		if now.After(entry.expiresAt) {
			delete(s.handoffs, tabID)
			removed++
		}
	}
	for tabID, entry := range s.summaries {
		if now.After(entry.expiresAt) {
			delete(s.summaries, tabID)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired entries every interval until ctx is done
func (s *SessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					log.Printf("🧹 SessionStore: Removed %d expired entries", removed)
				}
			}
		}
	}()
}
