package observerx_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/observerx"
)

func newObserver(t *testing.T, initial string) (*ConcreteObserver, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewConcreteObserver(initial, WithNoticeWriter(&buf)), &buf
}

func TestSubjectStateRoundTrip(t *testing.T) {
	s := NewConcreteSubject()
	assert.Equal(t, "", s.SubjectState())

	for _, v := range []string{"HAPPY", "", "with spaces", "ünïcode"} {
		s.SetSubjectState(v)
		assert.Equal(t, v, s.SubjectState())
	}
}

func TestSetStateDoesNotNotify(t *testing.T) {
	s := NewConcreteSubject()
	o, notices := newObserver(t, "init")
	s.AddObserver(o)

	s.SetSubjectState("HAPPY")
	assert.Equal(t, "init", o.ObserverState())
	assert.Empty(t, notices.String())
}

func TestAddKeepsOrderAndDuplicates(t *testing.T) {
	s := NewConcreteSubject()
	a, _ := newObserver(t, "a")
	b, _ := newObserver(t, "b")

	s.AddObserver(a)
	s.AddObserver(b)
	s.AddObserver(a)

	require.Equal(t, 3, s.Len())
	got := s.Observers()
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
	assert.Same(t, a, got[2])
}

func TestObserversReturnsCopy(t *testing.T) {
	s := NewConcreteSubject()
	a, _ := newObserver(t, "a")
	s.AddObserver(a)

	got := s.Observers()
	got[0] = nil
	assert.Same(t, a, s.Observers()[0])
}

func TestRemoveObserverPreservesOrder(t *testing.T) {
	tests := []struct {
		name   string
		remove []int
		want   []string
	}{
		{"first", []int{0}, []string{"b", "c", "d"}},
		{"middle", []int{1}, []string{"a", "c", "d"}},
		{"last", []int{3}, []string{"a", "b", "c"}},
		{"twice from front", []int{0, 0}, []string{"c", "d"}},
		{"all", []int{3, 2, 1, 0}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewConcreteSubject()
			for _, id := range []string{"a", "b", "c", "d"} {
				o, _ := newObserver(t, id)
				s.AddObserver(o)
			}
			for _, idx := range tt.remove {
				require.NoError(t, s.RemoveObserver(idx))
			}

			require.Equal(t, 4-len(tt.remove), s.Len())
			got := make([]string, 0, s.Len())
			for _, o := range s.Observers() {
				got = append(got, o.ObserverState())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveObserverOutOfRange(t *testing.T) {
	s := NewConcreteSubject()
	a, _ := newObserver(t, "a")
	b, _ := newObserver(t, "b")
	s.AddObserver(a)
	s.AddObserver(b)

	for _, idx := range []int{-1, 2, 100} {
		err := s.RemoveObserver(idx)
		require.Error(t, err, "index %d", idx)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		assert.Equal(t, 2, s.Len())
	}

	empty := NewConcreteSubject()
	assert.ErrorIs(t, empty.RemoveObserver(0), ErrIndexOutOfRange)
	assert.Equal(t, 0, empty.Len())
}

func TestNotifyUpdatesInRegistrationOrder(t *testing.T) {
	s := NewConcreteSubject()
	var order []string
	for _, id := range []string{"first", "second", "third"} {
		s.AddObserver(funcObserver(func(src StateSource) {
			order = append(order, id+"="+src.SubjectState())
		}))
	}

	s.SetSubjectState("x")
	s.NotifyObservers()
	assert.Equal(t, []string{"first=x", "second=x", "third=x"}, order)
}

func TestNotifyPullsCurrentState(t *testing.T) {
	s := NewConcreteSubject()
	o, notices := newObserver(t, "init")
	s.AddObserver(o)

	s.SetSubjectState("HAPPY")
	s.NotifyObservers()

	assert.Equal(t, "HAPPY", o.ObserverState())
	assert.Equal(t, UpdateNotice+"\n", notices.String())
}

func TestRemovedObserverKeepsState(t *testing.T) {
	s := NewConcreteSubject()
	a, _ := newObserver(t, "a")
	b, bNotices := newObserver(t, "b")
	s.AddObserver(a)
	s.AddObserver(b)

	s.SetSubjectState("HAPPY")
	s.NotifyObservers()
	require.NoError(t, s.RemoveObserver(1))

	for _, v := range []string{"SURPRISED", "ANGRY", "CALM"} {
		s.SetSubjectState(v)
		s.NotifyObservers()
		assert.Equal(t, v, a.ObserverState())
		assert.Equal(t, "HAPPY", b.ObserverState())
	}
	assert.Equal(t, 1, strings.Count(bNotices.String(), UpdateNotice))
}

func TestDuplicateObserverUpdatedTwice(t *testing.T) {
	s := NewConcreteSubject()
	a, notices := newObserver(t, "a")
	s.AddObserver(a)
	s.AddObserver(a)

	s.SetSubjectState("x")
	s.NotifyObservers()
	assert.Equal(t, 2, strings.Count(notices.String(), UpdateNotice))
}

func TestSubjectLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := NewConcreteSubject(WithLogger(logger), WithName("mood"))
	o, _ := newObserver(t, "init")
	s.AddObserver(o)
	s.SetSubjectState("HAPPY")
	s.NotifyObservers()
	require.Error(t, s.RemoveObserver(5))

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "observer added", entries[0].Message)
	assert.Equal(t, "mood", entries[0].Data["subject"])
	assert.Equal(t, "notifying observers", entries[1].Message)
	assert.Equal(t, "HAPPY", entries[1].Data["state"])
	assert.Equal(t, logrus.WarnLevel, entries[2].Level)
}

func TestSnapshot(t *testing.T) {
	s := NewConcreteSubject(WithName("mood"))
	a, _ := newObserver(t, "INITIALIZE-1")
	b, _ := newObserver(t, "INITIALIZE-2")
	s.AddObserver(a)
	s.AddObserver(b)
	s.SetSubjectState("HAPPY")
	s.NotifyObservers()
	require.NoError(t, s.RemoveObserver(1))
	s.AddObserver(b)
	s.SetSubjectState("SURPRISED")

	snap := s.Snapshot()
	assert.Equal(t, Snapshot{
		Name:         "mood",
		SubjectState: "SURPRISED",
		Observers: []ObserverSnapshot{
			{Index: 0, State: "HAPPY"},
			{Index: 1, State: "HAPPY"},
		},
	}, snap)
	assert.False(t, snap.Fresh(0))
	assert.False(t, snap.Fresh(7))

	s.NotifyObservers()
	assert.True(t, s.Snapshot().Fresh(1))
}

func TestZeroValueObserverWritesToStdout(t *testing.T) {
	var o ConcreteObserver
	s := NewConcreteSubject()
	s.AddObserver(&o)
	s.SetSubjectState("x")
	s.NotifyObservers()
	assert.Equal(t, "x", o.ObserverState())
}

type funcObserver func(src StateSource)

func (f funcObserver) ObserverState() string { return "" }

func (f funcObserver) UpdateObserverState(src StateSource) { f(src) }

// detacher removes the observer at index from its subject during its first update.
type detacher struct {
	subject *ConcreteSubject
	index   int
	state   string
	err     error
	calls   int
}

func (d *detacher) ObserverState() string { return d.state }

func (d *detacher) UpdateObserverState(src StateSource) {
	d.state = src.SubjectState()
	d.calls++
	if d.calls == 1 {
		d.err = d.subject.RemoveObserver(d.index)
	}
}

func TestRemovalDuringNotify(t *testing.T) {
	s := NewConcreteSubject()
	d := &detacher{subject: s, index: 0}
	b, _ := newObserver(t, "b")
	c, _ := newObserver(t, "c")
	s.AddObserver(d)
	s.AddObserver(b)
	s.AddObserver(c)

	s.SetSubjectState("first")
	require.NotPanics(t, s.NotifyObservers)
	require.NoError(t, d.err)

	// The running pass still reaches every observer registered when it began.
	assert.Equal(t, "first", b.ObserverState())
	assert.Equal(t, "first", c.ObserverState())
	assert.Equal(t, 2, s.Len())

	s.SetSubjectState("second")
	s.NotifyObservers()
	assert.Equal(t, "first", d.ObserverState())
	assert.Equal(t, 1, d.calls)
	assert.Equal(t, "second", b.ObserverState())
	assert.Equal(t, "second", c.ObserverState())
}

func TestRemovalOfLaterObserverDuringNotify(t *testing.T) {
	s := NewConcreteSubject()
	d := &detacher{subject: s, index: 2}
	b, _ := newObserver(t, "b")
	c, _ := newObserver(t, "c")
	s.AddObserver(d)
	s.AddObserver(b)
	s.AddObserver(c)

	s.SetSubjectState("first")
	require.NotPanics(t, s.NotifyObservers)
	require.NoError(t, d.err)
	assert.Equal(t, "first", c.ObserverState())

	s.SetSubjectState("second")
	s.NotifyObservers()
	assert.Equal(t, "second", b.ObserverState())
	assert.Equal(t, "first", c.ObserverState())
}
