package httpserver

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel_admin/internal/domain"
	"hotel_admin/internal/wizard"
)

// WizardStore keeps in-progress registrations in memory. A restart loses them.
type WizardStore struct {
	mu  sync.Mutex
	m   map[string]*session
	now func() time.Time
}

// session serializes access to one wizard.
type session struct {
	sync.Mutex
	w        *wizard.Wizard
	lastUsed time.Time
}

func NewWizardStore() *WizardStore {
	return &WizardStore{m: map[string]*session{}, now: time.Now}
}

func (s *WizardStore) create(refs domain.ReferenceLists) (string, *session) {
	id := uuid.NewString()
	ss := &session{w: wizard.New(refs), lastUsed: s.now()}
	s.mu.Lock()
	s.m[id] = ss
	s.mu.Unlock()
	return id, ss
}

func (s *WizardStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.m[id]
	if ok {
		ss.lastUsed = s.now()
	}
	return ss, ok
}

func (s *WizardStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[id]
	delete(s.m, id)
	return ok
}

func (s *WizardStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Sweep drops wizards idle for longer than maxIdle and returns how many went.
func (s *WizardStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, ss := range s.m {
		if ss.lastUsed.Before(cutoff) {
			delete(s.m, id)
			n++
		}
	}
	return n
}
