// Package scenario runs scripted sequences of subject operations described in YAML.
package scenario

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/comalice/observerx"
)

// Turbulent is the built-in script: two observers, two updates and a removal.
//
//go:embed scripts/turbulent.yaml
var Turbulent []byte

type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpSet     Op = "set"
	OpNotify  Op = "notify"
	OpPrint   Op = "print"
	OpNewline Op = "newline"
)

// Step is one operation. Observer is used by add, Index by remove and State by set.
type Step struct {
	Op       Op      `yaml:"op"`
	Observer *int    `yaml:"observer,omitempty"`
	Index    *int    `yaml:"index,omitempty"`
	State    *string `yaml:"state,omitempty"`
}

// Script declares the observers up front by initial state and then the steps
// to run against a single subject.
type Script struct {
	Name      string   `yaml:"name"`
	Observers []string `yaml:"observers"`
	Steps     []Step   `yaml:"steps"`
}

// Result is the end state of a run.
type Result struct {
	Subject   *observerx.ConcreteSubject
	Observers []*observerx.ConcreteObserver
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "yaml unmarshal")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "script %s", path)
	}
	return s, nil
}

// Validate checks step arguments. Removal indexes are checked when the step runs.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		switch st.Op {
		case OpAdd:
			if st.Observer == nil {
				return errors.Errorf("step %d: add needs observer", i)
			}
			if *st.Observer < 0 || *st.Observer >= len(s.Observers) {
				return errors.Errorf("step %d: unknown observer %d", i, *st.Observer)
			}
		case OpRemove:
			if st.Index == nil {
				return errors.Errorf("step %d: remove needs index", i)
			}
		case OpSet:
			if st.State == nil {
				return errors.Errorf("step %d: set needs state", i)
			}
		case OpNotify, OpPrint, OpNewline:
		default:
			return errors.Errorf("step %d: unknown op %q", i, st.Op)
		}
	}
	return nil
}

// Run executes the script against a fresh ConcreteSubject. Observer notices
// and print output go to w. opts are applied to the subject and every observer
// after the defaults derived from the script.
func (s *Script) Run(w io.Writer, opts ...observerx.Option) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	subjectOpts := append([]observerx.Option{observerx.WithName(s.Name)}, opts...)
	observerOpts := append([]observerx.Option{observerx.WithNoticeWriter(w)}, opts...)

	res := &Result{
		Subject:   observerx.NewConcreteSubject(subjectOpts...),
		Observers: make([]*observerx.ConcreteObserver, len(s.Observers)),
	}
	for i, initial := range s.Observers {
		res.Observers[i] = observerx.NewConcreteObserver(initial, observerOpts...)
	}

	for i, st := range s.Steps {
		switch st.Op {
		case OpAdd:
			res.Subject.AddObserver(res.Observers[*st.Observer])
		case OpRemove:
			if err := res.Subject.RemoveObserver(*st.Index); err != nil {
				return res, errors.Wrapf(err, "step %d", i)
			}
		case OpSet:
			res.Subject.SetSubjectState(*st.State)
		case OpNotify:
			res.Subject.NotifyObservers()
		case OpPrint:
			for n, o := range res.Observers {
				fmt.Fprintf(w, "STATE OF OBSERVER%d: %s\n", n+1, o.ObserverState())
			}
		case OpNewline:
			fmt.Fprintln(w)
		}
	}
	return res, nil
}
