package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/observerx"
)

// DefaultVisualizer renders subject snapshots.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source with one edge per registered
// observer, labeled with its registration index. Observers holding the
// subject's current state are filled green, stale ones grey.
func (v *DefaultVisualizer) ExportDOT(snap observerx.Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Observers {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	subjectID := nodeID("subject", snap.Name)
	fmt.Fprintf(&buf, "  %q [label=%q shape=ellipse style=filled fillcolor=orange];\n",
		subjectID, fmt.Sprintf("%s\n%s", snap.Name, snap.SubjectState))

	for i, o := range snap.Observers {
		id := nodeID("observer", fmt.Sprint(o.Index))
		style := ` style=filled fillcolor=lightgrey`
		if snap.Fresh(i) {
			style = ` style=filled fillcolor=lightgreen`
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", id, o.State, style)
		fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\"];\n", subjectID, id, o.Index)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the snapshot to JSON.
func (v *DefaultVisualizer) ExportJSON(snap observerx.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// ExportYAML serializes the snapshot to YAML.
func (v *DefaultVisualizer) ExportYAML(snap observerx.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}

func nodeID(kind, name string) string {
	return kind + ":" + name
}
