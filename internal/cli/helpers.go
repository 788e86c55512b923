// Shared helpers for assocrows CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mesh-intelligence/assocrows/internal/paths"
	"github.com/mesh-intelligence/assocrows/internal/sqlite"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// openStore resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must Detach the returned store.
func (a *app) openStore() (*sqlite.Backend, string, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, "", fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := store.Attach(storeConfig(a.cfg, dataDir)); err != nil {
		return nil, "", fmt.Errorf("attach store: %w", err)
	}
	return store, dataDir, nil
}

// withStore runs fn against an attached store and detaches afterwards.
func (a *app) withStore(fn func(*sqlite.Backend) error) error {
	store, _, err := a.openStore()
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		_ = store.Detach()
		return err
	}
	return store.Detach()
}

// readInput returns the contents of path, or of stdin when path is "" or "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// parseKeyPairs turns col=value flags into an association key for table.
// Values that parse as JSON keep their JSON type; others are strings.
func parseKeyPairs(table string, pairs []string) (types.AssociationKey, error) {
	key := types.AssociationKey{Metadata: types.AssociationKeyMetadata{Table: table}}
	for _, p := range pairs {
		col, raw, ok := strings.Cut(p, "=")
		if !ok || col == "" {
			return key, fmt.Errorf("%w: key %q must be column=value", errUsage, p)
		}
		key.Metadata.KeyColumns = append(key.Metadata.KeyColumns, col)
		key.KeyValues = append(key.KeyValues, parseScalar(raw))
	}
	return key, nil
}

// parseScalar decodes raw as a JSON scalar, falling back to the raw string.
func parseScalar(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	}
	return v
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// formatTuple renders a tuple as space-separated column=value pairs in
// column order.
func formatTuple(t types.Tuple) string {
	names := make(types.ColumnSet, len(t))
	for c := range t {
		names.Add(c)
	}
	parts := make([]string, 0, len(t))
	for _, c := range names.Sorted() {
		parts = append(parts, fmt.Sprintf("%s=%s", c, formatValue(t[c])))
	}
	return strings.Join(parts, " ")
}

// formatValue renders scalars plainly and anything else as JSON.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
