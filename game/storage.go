package game

import (
	"encoding/json"
	"errors"
	"log"
	"os"
)

// SaveData is the opaque progress blob persisted at level-complete
// boundaries.
type SaveData struct {
	UnlockedLevels []int       `json:"unlockedLevels"`
	BestScores     map[int]int `json:"bestScores"`
}

// NewSaveData returns the default progress: first level unlocked,
// no scores.
func NewSaveData() *SaveData {
	return &SaveData{
		UnlockedLevels: []int{0},
		BestScores:     make(map[int]int),
	}
}

// IsUnlocked reports whether the level index is unlocked.
func (s *SaveData) IsUnlocked(index int) bool {
	for _, i := range s.UnlockedLevels {
		if i == index {
			return true
		}
	}
	return false
}

// Unlock marks a level index as unlocked.
func (s *SaveData) Unlock(index int) {
	if s.IsUnlocked(index) {
		return
	}
	s.UnlockedLevels = append(s.UnlockedLevels, index)
}

// RecordScore keeps the best score for a level. Returns true if score
// is a new best.
func (s *SaveData) RecordScore(index, score int) bool {
	if s.BestScores == nil {
		s.BestScores = make(map[int]int)
	}
	if best, ok := s.BestScores[index]; ok && best >= score {
		return false
	}
	s.BestScores[index] = score
	return true
}

// SaveStore persists the progress blob. Implementations swallow their
// own I/O faults: Load reports absence as (nil, nil) after logging,
// and a failed Save never propagates into the simulation.
type SaveStore interface {
	Load() (*SaveData, error)
	Save(data *SaveData) error
}

// FileStore keeps the blob as a JSON file next to the executable.
type FileStore struct {
	Path string
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the blob. A missing file is normal and returns (nil, nil);
// a corrupt one is logged and treated the same way.
func (f *FileStore) Load() (*SaveData, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		log.Printf("save: read %s: %v", f.Path, err)
		return nil, nil
	}
	var data SaveData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("save: corrupt %s: %v", f.Path, err)
		return nil, nil
	}
	return &data, nil
}

// Save writes the blob, logging failures without returning them as
// fatal to the caller's frame.
func (f *FileStore) Save(data *SaveData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("save: marshal: %v", err)
		return nil
	}
	if err := os.WriteFile(f.Path, raw, 0o644); err != nil {
		log.Printf("save: write %s: %v", f.Path, err)
	}
	return nil
}

// MemStore is an in-memory SaveStore for tests.
type MemStore struct {
	Data  *SaveData
	Saves int
}

// Load returns the stored blob, or nil when nothing was saved.
func (m *MemStore) Load() (*SaveData, error) {
	return m.Data, nil
}

// Save replaces the stored blob.
func (m *MemStore) Save(data *SaveData) error {
	m.Data = data
	m.Saves++
	return nil
}
