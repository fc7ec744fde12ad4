package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prochat/prochat/internal/chat"
	"github.com/prochat/prochat/internal/util"
)

// Snapshot is the durable record: the full ordered collection of
// conversations plus the current-conversation id. It round-trips
// losslessly.
type Snapshot struct {
	Conversations []*chat.Conversation `json:"conversations"`
	CurrentID     string               `json:"current_id,omitempty"`
}

// Persistence is the durable storage port injected into the store.
type Persistence interface {
	// Load reads the last saved snapshot. A missing record yields
	// (nil, nil).
	Load() (*Snapshot, error)

	// Save writes the snapshot durably.
	Save(*Snapshot) error
}

// FilePersistence stores the snapshot as a single JSON file.
type FilePersistence struct {
	Path string
}

// NewFilePersistence creates a file-backed persistence at path.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{Path: path}
}

// Load reads and parses the snapshot file.
func (f *FilePersistence) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically.
func (f *FilePersistence) Save(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing snapshot: %w", err)
	}
	if err := util.AtomicWriteFile(f.Path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
