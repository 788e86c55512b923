// Reading and atomically rewriting associations.jsonl.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxLine bounds one JSONL line, which holds a whole association document.
const maxLine = 16 << 20

// touch creates path when it is missing and leaves existing content alone.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return f.Close()
}

// readDocuments decodes one association document per line. Blank lines,
// malformed JSON and documents missing their ID or key are skipped.
func readDocuments(path string) ([]*associationJSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var docs []*associationJSON
	sc := bufio.NewScanner(f)
	sc.Buffer(nil, maxLine)
	for sc.Scan() {
		var doc associationJSON
		if json.Unmarshal(sc.Bytes(), &doc) != nil {
			continue
		}
		if doc.DocID == "" || doc.DocKey == "" {
			continue
		}
		docs = append(docs, &doc)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return docs, nil
}

// writeDocuments replaces path with one line per document.
func writeDocuments(path string, docs []*associationJSON) error {
	return replaceFile(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding %s: %w", doc.DocID, err)
			}
		}
		return nil
	})
}

// replaceFile writes a sibling temp file, syncs it and renames it over path,
// so readers see either the old or the new content.
func replaceFile(path string, write func(*bufio.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = write(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
