// Package production provides integrations around subjects: snapshot storage,
// channel forwarding and visualization.
package production

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/comalice/observerx"
)

// Store saves and loads subject snapshots by subject name.
type Store interface {
	Save(ctx context.Context, snapshot observerx.Snapshot) error
	Load(ctx context.Context, name string) (observerx.Snapshot, error)
}

// Restore sets the subject's state from snapshot. Observers are not notified;
// the caller decides when to run a notify pass.
func Restore(subject observerx.Subject, snapshot observerx.Snapshot) {
	subject.SetSubjectState(snapshot.SubjectState)
}

// fileStore holds the directory handling shared by the JSON and YAML stores.
type fileStore struct {
	dir string
	ext string
}

func newFileStore(dir, ext string) (fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileStore{}, errors.Wrapf(err, "mkdir %s", dir)
	}
	return fileStore{dir: dir, ext: ext}, nil
}

func (f fileStore) path(name string) string {
	return filepath.Join(f.dir, name+f.ext)
}

func (f fileStore) write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return errors.New("snapshot has no name")
	}
	fn := f.path(name)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", fn)
	}
	return nil
}

func (f fileStore) read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := f.path(name)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(os.ErrNotExist, "subject %q", name)
		}
		return nil, errors.Wrapf(err, "read %s", fn)
	}
	return data, nil
}

// checkIndexes rejects snapshots whose observers are not numbered 0..n-1 in order.
func checkIndexes(snapshot observerx.Snapshot) error {
	for i, o := range snapshot.Observers {
		if o.Index != i {
			return errors.Errorf("snapshot %q: observer %d has index %d", snapshot.Name, i, o.Index)
		}
	}
	return nil
}

// JSONStore is a file-based Store using JSON serialization.
type JSONStore struct {
	fileStore
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a JSONStore, ensuring the directory exists.
func NewJSONStore(dir string) (*JSONStore, error) {
	fs, err := newFileStore(dir, ".json")
	if err != nil {
		return nil, err
	}
	return &JSONStore{fileStore: fs}, nil
}

func (p *JSONStore) Save(ctx context.Context, snapshot observerx.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "json marshal")
	}
	return p.write(ctx, snapshot.Name, data)
}

func (p *JSONStore) Load(ctx context.Context, name string) (observerx.Snapshot, error) {
	data, err := p.read(ctx, name)
	if err != nil {
		return observerx.Snapshot{}, err
	}

	var snapshot observerx.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return observerx.Snapshot{}, errors.Wrap(err, "json unmarshal")
	}
	snapshot.Name = name
	if err := checkIndexes(snapshot); err != nil {
		return observerx.Snapshot{}, err
	}
	return snapshot, nil
}

// YAMLStore is a file-based Store using YAML serialization.
type YAMLStore struct {
	fileStore
}

var _ Store = (*YAMLStore)(nil)

// NewYAMLStore creates a YAMLStore, ensuring the directory exists.
func NewYAMLStore(dir string) (*YAMLStore, error) {
	fs, err := newFileStore(dir, ".yaml")
	if err != nil {
		return nil, err
	}
	return &YAMLStore{fileStore: fs}, nil
}

func (p *YAMLStore) Save(ctx context.Context, snapshot observerx.Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "yaml marshal")
	}
	return p.write(ctx, snapshot.Name, data)
}

func (p *YAMLStore) Load(ctx context.Context, name string) (observerx.Snapshot, error) {
	data, err := p.read(ctx, name)
	if err != nil {
		return observerx.Snapshot{}, err
	}

	var snapshot observerx.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return observerx.Snapshot{}, errors.Wrap(err, "yaml unmarshal")
	}
	snapshot.Name = name
	if err := checkIndexes(snapshot); err != nil {
		return observerx.Snapshot{}, err
	}
	return snapshot, nil
}
