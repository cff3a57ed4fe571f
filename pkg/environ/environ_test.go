package environ

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	env := Env{
		"NAMESPACE":  "team-a",
		"CLUSTER":    "prod",
		"EMPTY":      "",
		"dotted.key": "dots",
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no reference", in: "plain", want: "plain"},
		{name: "braced", in: "${NAMESPACE}", want: "team-a"},
		{name: "bare", in: "$NAMESPACE", want: "team-a"},
		{name: "embedded", in: "ns-${NAMESPACE}-$CLUSTER", want: "ns-team-a-prod"},
		{name: "unresolved braced", in: "${MISSING}", want: "${MISSING}"},
		{name: "unresolved bare", in: "pre-$MISSING", want: "pre-$MISSING"},
		{name: "set but empty", in: "x${EMPTY}y", want: "xy"},
		{name: "dotted braced", in: "${dotted.key}", want: "dots"},
		{name: "lone dollar", in: "cost$", want: "cost$"},
		{name: "url", in: "https://${CLUSTER}.example.com:6443", want: "https://prod.example.com:6443"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.Expand(tt.in))
		})
	}
}

func TestSnapshotDotenv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("WITHKUBE_TEST_A=one\nWITHKUBE_TEST_B=one\n"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("WITHKUBE_TEST_B=two\n"), 0600))

	env, err := Snapshot(first, second)
	require.NoError(t, err)

	assert.Equal(t, "one", env["WITHKUBE_TEST_A"])
	assert.Equal(t, "two", env["WITHKUBE_TEST_B"])
}

func TestSnapshotMissingFile(t *testing.T) {
	_, err := Snapshot(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestWithAndList(t *testing.T) {
	base := Env{"A": "1"}
	got := base.With(map[string]string{"B": "2"})

	assert.Equal(t, Env{"A": "1"}, base)
	list := got.List()
	sort.Strings(list)
	assert.Equal(t, []string{"A=1", "B=2"}, list)
}
