package cloudsync

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const (
	pendingDirName = ".sync-pending"
	pendingKey     = "days"
)

// Pending stores the dirty day keys between sessions.
type Pending interface {
	Load() ([]string, error)
	Save(keys []string) error
}

// PendingFile keeps the dirty set in a diskv entry inside the data directory.
type PendingFile struct {
	d *diskv.Diskv
}

// OpenPending returns the pending set of dataDir. Nothing touches the disk
// until the first load or save.
func OpenPending(dataDir string) *PendingFile {
	return &PendingFile{d: diskv.New(diskv.Options{
		BasePath:     filepath.Join(dataDir, pendingDirName),
		CacheSizeMax: 64 * 1024,
	})}
}

// Load returns the saved keys. A missing entry is an empty set.
func (p *PendingFile) Load() ([]string, error) {
	data, err := p.d.Read(pendingKey)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Save replaces the saved keys. An empty set removes the entry.
func (p *PendingFile) Save(keys []string) error {
	if len(keys) == 0 {
		if !p.d.Has(pendingKey) {
			return nil
		}
		return p.d.Erase(pendingKey)
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return p.d.Write(pendingKey, data)
}
