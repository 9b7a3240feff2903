package custom

import (
	"fmt"
	"os"
	"sync"

	"github.com/jsphweid/rebeam/model"
	"gopkg.in/yaml.v3"
)

// overridesFile is the on-disk layout:
//
//	overrides:
//	  "7/8":
//	    split8: [0, 2, 4, 7]
//	    split16: [0, 4, 8, 14]
type overridesFile struct {
	Overrides map[string]model.Sequences `yaml:"overrides"`
}

// FileSource serves overrides from a YAML file. Reload swaps the contents
// atomically; lookups never see a half-read file.
type FileSource struct {
	path string

	mu   sync.RWMutex
	data Static
}

// NewFileSource reads path once. A missing file is an error.
func NewFileSource(path string) (*FileSource, error) {
	fs := &FileSource{path: path}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileSource) Path() string {
	return fs.path
}

func (fs *FileSource) Reload() error {
	data, err := LoadFile(fs.path)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	fs.data = data
	fs.mu.Unlock()
	return nil
}

func (fs *FileSource) Lookup(ts model.TimeSignature) (model.Sequences, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.data.Lookup(ts)
}

func (fs *FileSource) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.data)
}

// LoadFile parses an overrides file. Keys are normalised through
// model.ParseTimeSignature so " 7 / 8" and "7/8" are the same entry.
func LoadFile(path string) (Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Static, error) {
	var f overridesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}
	res := make(Static, len(f.Overrides))
	for key, seqs := range f.Overrides {
		ts, err := model.ParseTimeSignature(key)
		if err != nil {
			return nil, fmt.Errorf("bad override key: %w", err)
		}
		res[ts.String()] = seqs
	}
	return res, nil
}
