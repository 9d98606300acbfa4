// Package archive bundles exported images into a single downloadable
// zip container.
package archive

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zip"
)

// Entry is one file in the archive.
type Entry struct {
	Name string
	Data []byte
}

// Build writes every entry into a zip archive, in order. Duplicate names
// are disambiguated with a numeric suffix so no record is dropped.
func Build(entries []Entry) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	seen := make(map[string]int)
	for _, e := range entries {
		name := e.Name
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s (%d)", name, n)
		}
		seen[e.Name]++

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
