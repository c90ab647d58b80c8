package services

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Availability states shared by the submission and results gates. Anything
// else returned by the resolver is the name of the open review type, meaning
// "available for submission under this kind".
const (
	AvailabilityUnavailable = "Unavailable"
	AvailabilityCompleted   = "Completed"
)

// TeamMember is the roster entry cached for the duration of a review.
type TeamMember struct {
	NetID string `json:"net_id"`
	Name  string `json:"name"`
}

// CriterionInfo is the criteria entry cached for the duration of a review.
type CriterionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReviewSession is the per-student state kept between requests: identity,
// membership, resolved availability and the roster/criteria snapshot backing
// the submission form. ReviewType records the kind the snapshot was loaded
// for; kind and criteria go stale together. The session is created at login
// and cleared at logout or when the store's TTL expires it.
type ReviewSession struct {
	NetID              string          `json:"net_id"`
	UtdID              string          `json:"utd_id"`
	Name               string          `json:"name"`
	SectionCode        string          `json:"section_code"`
	TeamNumber         string          `json:"team_number"`
	PRAvailability     string          `json:"pr_availability"`
	ScoresAvailability string          `json:"scores_availability"`
	ReviewType         string          `json:"review_type,omitempty"`
	TeamMembers        []TeamMember    `json:"team_members,omitempty"`
	Criteria           []CriterionInfo `json:"criteria,omitempty"`
}

// FormSnapshot returns the cached roster and criteria when both are present
// and were loaded for the given review type. A snapshot cached under another
// kind must not back a submission: the window may have rolled over since the
// form was loaded, and criteria are scoped to their window.
func (s ReviewSession) FormSnapshot(reviewType string) ([]TeamMember, []CriterionInfo, bool) {
	if s.ReviewType != reviewType || len(s.TeamMembers) == 0 || len(s.Criteria) == 0 {
		return nil, nil, false
	}
	return s.TeamMembers, s.Criteria, true
}

type sessionEntry struct {
	session   ReviewSession
	expiresAt time.Time
}

// SessionStore holds ReviewSession snapshots keyed by net id with a sliding
// TTL. Entries are scoped per student and never shared.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	ttl     time.Duration
}

// NewSessionStore creates a store with the given TTL. Zero or negative means
// the SESSION_TTL_MINUTES env value, defaulting to 30 minutes.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		minutes, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
		if err != nil || minutes <= 0 {
			minutes = 30
		}
		ttl = time.Duration(minutes) * time.Minute
	}
	return &SessionStore{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
	}
}

// Put stores a fresh snapshot, replacing any previous one for the student.
func (s *SessionStore) Put(session ReviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.NetID] = &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Get returns the snapshot for a student, if present and not expired. Reads
// slide the expiry forward.
func (s *SessionStore) Get(netID string) (ReviewSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[netID]
	if !ok {
		return ReviewSession{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, netID)
		return ReviewSession{}, false
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return entry.session, true
}

// Update applies fn to the student's snapshot, if present. It is the only way
// callers mutate cached state, which keeps every write in one place.
func (s *SessionStore) Update(netID string, fn func(*ReviewSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[netID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, netID)
		return false
	}
	fn(&entry.session)
	entry.expiresAt = time.Now().Add(s.ttl)
	return true
}

// Clear removes the student's snapshot (logout).
func (s *SessionStore) Clear(netID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, netID)
}
