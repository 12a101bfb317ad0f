package layout

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayout(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeLayout(t, "mini.toml", `
name = "mini"

[rules.k]
text = "ক"
category = "consonant"

[rules.aa]
text = "আ"
category = "vowel"
`)

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mini", table.Name())
	assert.Equal(t, 2, table.Len())

	g, ok := table.Lookup("aa")
	require.True(t, ok)
	assert.Equal(t, "আ", g.Text)
	assert.Equal(t, Vowel, g.Category)
}

func TestLoadYAML(t *testing.T) {
	path := writeLayout(t, "mini.yaml", `
name: mini
rules:
  k:
    text: "ক"
    category: consonant
  "3":
    text: "৩"
    category: digit
`)

	table, err := Load(path)
	require.NoError(t, err)

	g, ok := table.Lookup("3")
	require.True(t, ok)
	assert.Equal(t, Digit, g.Category)
}

func TestLoadJSONValidated(t *testing.T) {
	path := writeLayout(t, "mini.json", `{
  "name": "mini",
  "rules": {
    "k": {"text": "ক", "category": "consonant"}
  }
}`)

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadJSONSchemaRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing name", `{"rules": {"k": {"text": "ক", "category": "consonant"}}}`},
		{"bad category", `{"name": "x", "rules": {"k": {"text": "ক", "category": "letter"}}}`},
		{"key too long", `{"name": "x", "rules": {"abcd": {"text": "ক", "category": "consonant"}}}`},
		{"uppercase key", `{"name": "x", "rules": {"K": {"text": "ক", "category": "consonant"}}}`},
		{"empty rules", `{"name": "x", "rules": {}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeLayout(t, "bad.json", tc.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeLayout(t, "mini.ini", "name=mini")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDuplicateHandling(t *testing.T) {
	// Map-shaped formats cannot express duplicate keys, but TOML
	// rejects redefinition on its own; make sure the error surfaces.
	path := writeLayout(t, "dup.toml", `
name = "dup"

[rules.k]
text = "ক"
category = "consonant"

[rules.k]
text = "খ"
category = "consonant"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeLayout(t, "live.toml", `
name = "v1"

[rules.k]
text = "ক"
category = "consonant"
`)

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`
name = "v2"

[rules.k]
text = "ক"
category = "consonant"

[rules.g]
text = "গ"
category = "consonant"
`), 0644))

	select {
	case ev := <-w.Events():
		assert.Equal(t, "v2", ev.Table.Name())
		assert.Equal(t, 2, ev.Table.Len())
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}
}

func TestWatcherReportsBrokenEdit(t *testing.T) {
	path := writeLayout(t, "live.toml", `
name = "ok"

[rules.k]
text = "ক"
category = "consonant"
`)

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`name = `), 0644))

	select {
	case <-w.Events():
		t.Fatal("broken layout should not produce a reload event")
	case err := <-w.Errors():
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}
