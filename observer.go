package observerx

import (
	"fmt"
	"io"
	"os"
)

// UpdateNotice is written by ConcreteObserver each time it pulls a new state.
const UpdateNotice = "UPDATED OBSERVER'S STATE"

// StateSource is the read-only view of a subject handed to observers during a
// notify pass. Observers must not keep it after UpdateObserverState returns.
type StateSource interface {
	SubjectState() string
}

// Observer mirrors a snapshot of some subject's state.
type Observer interface {
	ObserverState() string
	UpdateObserverState(src StateSource)
}

// ConcreteObserver keeps its state as an in-memory string.
type ConcreteObserver struct {
	state  string
	notice io.Writer
}

// NewConcreteObserver creates an observer holding initial until its first update.
func NewConcreteObserver(initial string, opts ...Option) *ConcreteObserver {
	o := newOptions(opts)
	return &ConcreteObserver{
		state:  initial,
		notice: o.notice,
	}
}

func (o *ConcreteObserver) ObserverState() string {
	return o.state
}

// UpdateObserverState pulls the current state from src and announces the update.
func (o *ConcreteObserver) UpdateObserverState(src StateSource) {
	o.state = src.SubjectState()
	w := o.notice
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, UpdateNotice)
}
