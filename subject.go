package observerx

import (
	"github.com/sirupsen/logrus"
)

// DefaultSubjectName is used when no name is given with WithName.
const DefaultSubjectName = "subject"

// Subject holds a text state and pushes changes to its observers on demand.
// Setting the state never notifies by itself; callers run NotifyObservers.
type Subject interface {
	StateSource
	SetSubjectState(state string)
	AddObserver(o Observer)
	RemoveObserver(index int) error
	NotifyObservers()
}

// Observers is an ordered list of non-owned observers. Duplicates are allowed
// and order is registration order. The zero value is an empty list.
type Observers struct {
	list []Observer
}

// Add appends o to the end of the list.
func (l *Observers) Add(o Observer) {
	l.list = append(l.list, o)
}

// Remove deletes the observer at index and shifts the tail left.
// The list is left untouched when index is out of range.
func (l *Observers) Remove(index int) (Observer, error) {
	if index < 0 || index >= len(l.list) {
		return nil, indexOutOfRange(index, len(l.list))
	}
	o := l.list[index]
	copy(l.list[index:], l.list[index+1:])
	l.list[len(l.list)-1] = nil
	l.list = l.list[:len(l.list)-1]
	return o, nil
}

// Notify calls UpdateObserverState on every observer, in order, with src.
// The pass walks the observers registered when it starts, so an observer may
// add or remove observers from inside its update; the change applies to the
// next pass.
func (l *Observers) Notify(src StateSource) {
	for _, o := range l.All() {
		o.UpdateObserverState(src)
	}
}

func (l *Observers) Len() int {
	return len(l.list)
}

// All returns a copy of the list in registration order.
func (l *Observers) All() []Observer {
	out := make([]Observer, len(l.list))
	copy(out, l.list)
	return out
}

// ConcreteSubject stores its state as an in-memory string.
// Not safe for concurrent use; see SyncSubject.
type ConcreteSubject struct {
	name      string
	state     string
	observers Observers
	log       logrus.FieldLogger
}

var _ Subject = (*ConcreteSubject)(nil)

// NewConcreteSubject returns a subject with an empty state and no observers.
func NewConcreteSubject(opts ...Option) *ConcreteSubject {
	o := newOptions(opts)
	return &ConcreteSubject{
		name: o.name,
		log:  o.logger.WithField("subject", o.name),
	}
}

func (s *ConcreteSubject) Name() string {
	return s.name
}

func (s *ConcreteSubject) SubjectState() string {
	return s.state
}

func (s *ConcreteSubject) SetSubjectState(state string) {
	s.state = state
}

func (s *ConcreteSubject) AddObserver(o Observer) {
	s.observers.Add(o)
	s.log.WithField("observers", s.observers.Len()).Debug("observer added")
}

// RemoveObserver removes the observer at index. An out-of-range index returns
// an error wrapping ErrIndexOutOfRange.
func (s *ConcreteSubject) RemoveObserver(index int) error {
	if _, err := s.observers.Remove(index); err != nil {
		s.log.WithError(err).Warn("remove observer failed")
		return err
	}
	s.log.WithFields(logrus.Fields{
		"index":     index,
		"observers": s.observers.Len(),
	}).Debug("observer removed")
	return nil
}

// NotifyObservers runs one notify pass. All observers have been updated when
// it returns.
func (s *ConcreteSubject) NotifyObservers() {
	s.log.WithFields(logrus.Fields{
		"state":     s.state,
		"observers": s.observers.Len(),
	}).Debug("notifying observers")
	s.observers.Notify(s)
}

// Len returns the number of registered observers.
func (s *ConcreteSubject) Len() int {
	return s.observers.Len()
}

// Observers returns the registered observers in registration order.
func (s *ConcreteSubject) Observers() []Observer {
	return s.observers.All()
}

// Snapshot captures the subject state and the state of each registered observer.
func (s *ConcreteSubject) Snapshot() Snapshot {
	return takeSnapshot(s.name, s.state, s.observers.list)
}
