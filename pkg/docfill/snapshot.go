package docfill

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Snapshot is the last set of values used for a template, keyed by token text.
type Snapshot map[string]string

// LoadSnapshot reads the snapshot at path. A missing file yields an empty
// snapshot; an unreadable or malformed one is an error.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, NewDocumentError("load snapshot", path, err)
	}

	snap := Snapshot{}
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, NewDocumentError("load snapshot", path, err)
	}
	return snap, nil
}

// Marshal encodes the snapshot as indented JSON without HTML escaping, so
// values such as "R&D <team>" stay readable in the file.
func (s Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string]string(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the snapshot to path, replacing any previous file. An empty
// snapshot is not written and Save reports false.
func (s Snapshot) Save(path string) (bool, error) {
	if len(s) == 0 {
		return false, nil
	}
	data, err := s.Marshal()
	if err != nil {
		return false, NewDocumentError("save snapshot", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, NewDocumentError("save snapshot", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return false, NewDocumentError("save snapshot", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, NewDocumentError("save snapshot", path, err)
	}
	if err := tmp.Close(); err != nil {
		return false, NewDocumentError("save snapshot", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, NewDocumentError("save snapshot", path, err)
	}
	return true, nil
}

// SaveSnapshot writes values to path as a Snapshot.
func SaveSnapshot(path string, values map[string]string) (bool, error) {
	return Snapshot(values).Save(path)
}
