package observerx

// Snapshot is the serializable view of a subject and its observers at one point in time.
type Snapshot struct {
	Name         string             `json:"name" yaml:"name"`
	SubjectState string             `json:"subjectState" yaml:"subjectState"`
	Observers    []ObserverSnapshot `json:"observers" yaml:"observers"`
}

// ObserverSnapshot records one registered observer by its position in the list.
type ObserverSnapshot struct {
	Index int    `json:"index" yaml:"index"`
	State string `json:"state" yaml:"state"`
}

// Fresh reports whether the observer at i holds the subject's current state.
func (s Snapshot) Fresh(i int) bool {
	if i < 0 || i >= len(s.Observers) {
		return false
	}
	return s.Observers[i].State == s.SubjectState
}

func takeSnapshot(name, state string, list []Observer) Snapshot {
	snap := Snapshot{
		Name:         name,
		SubjectState: state,
		Observers:    make([]ObserverSnapshot, 0, len(list)),
	}
	for i, o := range list {
		snap.Observers = append(snap.Observers, ObserverSnapshot{
			Index: i,
			State: o.ObserverState(),
		})
	}
	return snap
}
