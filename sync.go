package observerx

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// SyncSubject is a Subject that is safe for concurrent use.
//
// A notify pass iterates a copy of the list taken under the read lock and
// calls observers without holding any lock, so observers may call back into
// the subject. Removals made while a pass is running take effect on the next
// pass. Observers themselves are not synchronized by SyncSubject.
type SyncSubject struct {
	mu        sync.RWMutex
	name      string
	state     string
	observers Observers
	log       logrus.FieldLogger
}

var _ Subject = (*SyncSubject)(nil)

// NewSyncSubject returns an empty SyncSubject.
func NewSyncSubject(opts ...Option) *SyncSubject {
	o := newOptions(opts)
	return &SyncSubject{
		name: o.name,
		log:  o.logger.WithField("subject", o.name),
	}
}

func (s *SyncSubject) SubjectState() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SyncSubject) SetSubjectState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *SyncSubject) AddObserver(o Observer) {
	s.mu.Lock()
	s.observers.Add(o)
	n := s.observers.Len()
	s.mu.Unlock()

	s.log.WithField("observers", n).Debug("observer added")
}

func (s *SyncSubject) RemoveObserver(index int) error {
	s.mu.Lock()
	_, err := s.observers.Remove(index)
	n := s.observers.Len()
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Warn("remove observer failed")
		return err
	}
	s.log.WithFields(logrus.Fields{
		"index":     index,
		"observers": n,
	}).Debug("observer removed")
	return nil
}

// NotifyObservers runs one notify pass over the observers registered when it starts.
func (s *SyncSubject) NotifyObservers() {
	s.mu.RLock()
	list := s.observers.All()
	state := s.state
	s.mu.RUnlock()

	s.log.WithFields(logrus.Fields{
		"state":     state,
		"observers": len(list),
	}).Debug("notifying observers")
	for _, o := range list {
		o.UpdateObserverState(s)
	}
}

func (s *SyncSubject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observers.Len()
}

// Observers returns a copy of the list in registration order.
func (s *SyncSubject) Observers() []Observer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observers.All()
}

// Snapshot reads observer states under the read lock.
func (s *SyncSubject) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return takeSnapshot(s.name, s.state, s.observers.list)
}
