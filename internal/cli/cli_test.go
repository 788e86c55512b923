package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

// dirs returns --config-dir and --data-dir flags pointing at fresh temp dirs.
func dirs(t *testing.T) []string {
	t.Helper()
	base := t.TempDir()
	return []string{
		"--config-dir", filepath.Join(base, "config"),
		"--data-dir", filepath.Join(base, "data"),
	}
}

const itemsInput = `{
  "key": {
    "metadata": {
      "table": "Order_items",
      "key_columns": ["order_id"],
      "row_key_columns": ["order_id", "item.id"],
      "associated_entity_key_columns": ["item.id"]
    },
    "key_values": ["o1"]
  },
  "rows": [
    {"order_id": "o1", "item.id": "i1", "qty": 2},
    {"order_id": "o1", "item.id": "i2", "qty": 5}
  ]
}`

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "assocrows v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInitCreatesConfigAndData(t *testing.T) {
	flags := dirs(t)
	out, err := run(t, "", append([]string{"init"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "assocrows initialized")

	cfg, err := os.ReadFile(filepath.Join(flags[1], "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: sqlite")

	_, err = os.Stat(filepath.Join(flags[3], "associations.jsonl"))
	assert.NoError(t, err)
}

func TestPutGetListRemove(t *testing.T) {
	flags := dirs(t)

	out, err := run(t, itemsInput, append([]string{"put"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "stored 2 rows")

	out, err = run(t, "", append([]string{"get", "Order_items", "--key", "order_id=o1"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "item.id=i1 order_id=o1 qty=2\nitem.id=i2 order_id=o1 qty=5\n", out)

	out, err = run(t, "", append([]string{"get", "Order_items", "--key", "order_id=o1", "--json"}, flags...)...)
	require.NoError(t, err)
	var got rowsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, `Order_items:{"order_id":"o1"}`, got.DocKey)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "i2", got.Rows[1]["item.id"])

	out, err = run(t, "", append([]string{"list", "Order_items"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `Order_items:{"order_id":"o1"}`)
	assert.Contains(t, out, "2 rows")

	_, err = run(t, "", append([]string{"remove", "Order_items", "--key", "order_id=o1"}, flags...)...)
	require.NoError(t, err)

	_, err = run(t, "", append([]string{"get", "Order_items", "--key", "order_id=o1"}, flags...)...)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestPutFromFile(t *testing.T) {
	flags := dirs(t)
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(itemsInput), 0o644))

	out, err := run(t, "", append([]string{"put", "--file", path, "--json"}, flags...)...)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(2), got["rows"])
	assert.NotEmpty(t, got["doc_id"])
}

func TestPutRejectsMalformedInput(t *testing.T) {
	_, err := run(t, "{not json", append([]string{"put"}, dirs(t)...)...)
	assert.ErrorIs(t, err, errUsage)
}

func TestPutRejectsInvalidKey(t *testing.T) {
	_, err := run(t, `{"key": {"metadata": {"table": "t"}}, "rows": []}`, append([]string{"put"}, dirs(t)...)...)
	assert.ErrorIs(t, err, types.ErrInvalidKey)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestGetRejectsMalformedKey(t *testing.T) {
	_, err := run(t, "", append([]string{"get", "t", "--key", "no-equals"}, dirs(t)...)...)
	assert.ErrorIs(t, err, errUsage)
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := run(t, "", append([]string{"init", "--log-level", "loud"}, dirs(t)...)...)
	assert.ErrorIs(t, err, errUsage)
}

func TestColumnsWithPrefix(t *testing.T) {
	out, err := run(t, `{"city": "X", "status": "active"}`, "columns", "--prefix", "owner", "--prefixed", "owner.city")
	require.NoError(t, err)
	assert.Equal(t, "owner.city\nstatus\n", out)

	out, err = run(t, `{"city": "X"}`, "columns", "--prefix", "owner", "--prefixed", "owner.city", "--get", "owner.city")
	require.NoError(t, err)
	assert.Equal(t, "X\n", out)
}

func TestColumnsNestedJSON(t *testing.T) {
	out, err := run(t, `{"id": 1, "address": {"city": "Lyon", "geo": {"lat": 45.5}}}`, "columns", "--json")
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"address.city", "address.geo.lat", "id"}, names)

	out, err = run(t, `{"address": {"geo": {"lat": 45.5}}}`, "columns", "--get", "address.geo")
	require.NoError(t, err)
	assert.Equal(t, "{\"lat\":45.5}\n", out)
}

func TestColumnsMissingColumn(t *testing.T) {
	_, err := run(t, `{}`, "columns", "--get", "city")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("wrapped: %w", types.ErrInvalidData)))
	assert.Equal(t, exitUserError, exitCode(types.ErrBackendUnknown))
	assert.Equal(t, exitSysError, exitCode(os.ErrPermission))
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, "o1", parseScalar("o1"))
	assert.Equal(t, float64(7), parseScalar("7"))
	assert.Equal(t, true, parseScalar("true"))
	assert.Equal(t, "quoted", parseScalar(`"quoted"`))
	assert.Equal(t, `{"a":1}`, parseScalar(`{"a":1}`))
}

func TestFormatTuple(t *testing.T) {
	got := formatTuple(types.Tuple{"b": 2, "a": "x", "c": nil, "d": map[string]any{"e": true}})
	assert.Equal(t, `a=x b=2 c=null d={"e":true}`, got)
}
