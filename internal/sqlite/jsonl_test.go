package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), associationsJSONL)
	docs := []*associationJSON{
		{DocID: "d1", TableName: "Order_tags", DocKey: "Order_tags:[\"o1\"]", Elements: []any{"urgent"}, Version: 1},
		{DocID: "d2", TableName: "Order_tags", DocKey: "Order_tags:[\"o2\"]", Elements: []any{}, Version: 3},
	}

	require.NoError(t, writeDocuments(path, docs))

	got, err := readDocuments(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].DocID)
	assert.Equal(t, []any{"urgent"}, got[0].Elements)
	assert.Equal(t, int64(3), got[1].Version)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be renamed away")
}

func TestReadDocumentsSkipsUnusableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), associationsJSONL)
	content := `{"doc_id":"d1","doc_key":"k1"}` + "\n\n{broken\n[1,2]\n" + `{"doc_id":"d2"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := readDocuments(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].DocID)
}

func TestReadDocumentsMissingFile(t *testing.T) {
	_, err := readDocuments(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestTouchKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), associationsJSONL)
	require.NoError(t, touch(path))
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	require.NoError(t, touch(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestReplaceFileKeepsOriginalOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), associationsJSONL)
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	err := writeDocuments(path, []*associationJSON{{DocID: "d1", Elements: []any{func() {}}}})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
