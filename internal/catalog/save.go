package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/justalter/dancectl/internal/util"
)

// Marshal encodes the catalog in its canonical form: entries ordered by
// (author, name, fingerprint), 4-space indentation, non-ASCII text written
// literally. The same catalog always produces the same bytes, so the stored
// file diffs cleanly across runs.
func Marshal(c Catalog) ([]byte, error) {
	if len(c) == 0 {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	buf.WriteString("{\n")
	fps := c.SortedFingerprints()
	for i, fp := range fps {
		entry, err := encodeEntry(c[fp].normalize())
		if err != nil {
			return nil, fmt.Errorf("encoding entry %s: %w", fp, err)
		}
		key, err := json.Marshal(fp)
		if err != nil {
			return nil, fmt.Errorf("encoding key %s: %w", fp, err)
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(entry)
		if i < len(fps)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Save writes the catalog to path atomically: the new content lands in a
// temp file first and replaces the old file in one rename, so a crash
// mid-write never corrupts the previous valid catalog. Unlike load
// failures, a save failure is always surfaced to the caller.
func Save(path string, c Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

func encodeEntry(e *Entry) ([]byte, error) {
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimRight(raw.Bytes(), "\n"), "    ", "    "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
