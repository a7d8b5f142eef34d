package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/visualgenome/errors"
)

const testGraph = `{
	"bounding_boxes": [
		{"id": 1, "x": 0, "y": 0, "width": 10, "height": 10, "boxed_objects": [{"name": "man", "object_canon": []}]},
		{"id": 2, "x": 5, "y": 5, "width": 10, "height": 10, "boxed_objects": [{"name": "dog", "object_canon": []}]}
	],
	"relationships": [{"id": 20, "subject": 1, "predicate": "walks", "object": 2, "relationship_canon": []}],
	"attributes": [{"id": 30, "subject": 2, "attribute": "brown", "attribute_canon": []}]
}`

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("GET /api/v0/images/all", func(w http.ResponseWriter, r *http.Request) {
		write(w, `{"results": [1, 2, 3], "next": null}`)
	})
	mux.HandleFunc("GET /api/v0/images/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			write(w, `{"detail": "Not found."}`)
			return
		}
		write(w, `{"id": 1, "url": "https://example.org/1.jpg", "width": 800, "height": 600, "coco_id": null, "flickr_id": 42}`)
	})
	mux.HandleFunc("GET /api/v0/images/{id}/regions", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[{"region_id": 7, "phrase": "a man walking", "x": 1, "y": 2, "width": 3, "height": 4}]`)
	})
	mux.HandleFunc("GET /api/v0/images/{id}/regions/{rid}", func(w http.ResponseWriter, r *http.Request) {
		write(w, "["+testGraph+"]")
	})
	mux.HandleFunc("GET /api/v0/images/{id}/graph", func(w http.ResponseWriter, r *http.Request) {
		write(w, testGraph)
	})
	qaPage := `{"results": [
		{"qa_id": 1, "image_id": 1, "question": "Why is the man walking?", "answer": "Exercise."},
		{"qa_id": 2, "image_id": 1, "question": "Why is the dog brown?", "answer": "Genes."}
	], "next": null}`
	mux.HandleFunc("GET /api/v0/qa/{qtype}", func(w http.ResponseWriter, r *http.Request) {
		write(w, qaPage)
	})
	mux.HandleFunc("GET /api/v0/image/{id}/qa", func(w http.ResponseWriter, r *http.Request) {
		write(w, qaPage)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testEnv writes a config file pointing at srv and returns its path and the
// data directory it configures
func testEnv(t *testing.T, srv *httptest.Server) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	path := filepath.Join(dir, "vg.toml")
	content := fmt.Sprintf("[api]\nbase_url = %q\nretries = 0\n\n[data]\ndir = %q\n", srv.URL, dataDir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path, dataDir
}

func execute(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestImageCommand(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "image", "1")
	require.NoError(t, err)
	var img map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &img))
	assert.EqualValues(t, 1, img["id"])
	assert.EqualValues(t, 42, img["flickr_id"])
	assert.NotContains(t, img, "coco_id")

	out, _, err = execute(t, configPath, "image", "1", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "800x600")
	assert.Contains(t, out, "flickr_id")
}

func TestImageCommand_Errors(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	_, _, err := execute(t, configPath, "image", "999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, _, err = execute(t, configPath, "image", "abc")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "integer")

	_, _, err = execute(t, configPath, "image", "1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRegionsCommand(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "regions", "1", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "phrase: a man walking")
	assert.Contains(t, out, "id: 7")
}

func TestGraphCommands(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "graph", "1", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "man walks dog")
	assert.Contains(t, out, "dog: brown")

	out, _, err = execute(t, configPath, "region-graph", "1", "7")
	require.NoError(t, err)
	var graph map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &graph))
	assert.Len(t, graph["objects"], 2)
	assert.Len(t, graph["relationships"], 1)
}

func TestQACommand(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "qa", "--type", "why", "--limit", "1")
	require.NoError(t, err)
	var qas []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &qas))
	require.Len(t, qas, 1)
	assert.Equal(t, "Why is the man walking?", qas[0]["question"])

	out, _, err = execute(t, configPath, "qa", "1", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Genes.")

	_, _, err = execute(t, configPath, "qa")
	assert.Error(t, err)
	_, _, err = execute(t, configPath, "qa", "1", "--type", "why")
	assert.Error(t, err)
	_, _, err = execute(t, configPath, "qa", "--type", "which")
	assert.Error(t, err)
}

func TestIDsCommand(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "ids")
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2, 3]`, out)

	out, _, err = execute(t, configPath, "ids", "--start", "1", "--end", "3")
	require.NoError(t, err)
	assert.JSONEq(t, `[2, 3]`, out)

	_, _, err = execute(t, configPath, "ids", "--start", "1")
	assert.Error(t, err)
}

func TestFetchCommand(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "fetch", "api/v0/images/1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1, "url": "https://example.org/1.jpg", "width": 800, "height": 600, "coco_id": null, "flickr_id": 42}`, out)

	_, _, err = execute(t, configPath, "fetch", "/api/v0/images/999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	out, _, err = execute(t, configPath, "fetch", "/api/v0/images/999", "--legacy")
	require.NoError(t, err)
	assert.JSONEq(t, `{"detail": "Not found."}`, out)
}

func TestSaveFlag(t *testing.T) {
	configPath, dataDir := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "image", "1", "--save", "--format", "yaml")
	require.NoError(t, err)

	saved, err := os.ReadFile(filepath.Join(dataDir, "image-1.yaml"))
	require.NoError(t, err)
	assert.Equal(t, out, string(saved))
}

func TestLogJSONFromEnvironment(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))
	t.Setenv("VG_LOG_JSON", "true")

	_, stderr, err := execute(t, configPath, "-v", "image", "1", "--save")
	require.NoError(t, err)

	var saved map[string]any
	for _, line := range strings.Split(stderr, "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["msg"] == "Saved output" {
			saved = entry
		}
	}
	require.NotNil(t, saved, "no JSON log line in stderr:\n%s", stderr)
	assert.Equal(t, "info", saved["level"])
	assert.Contains(t, saved["path"], "image-1.json")
}

func TestLogConsoleByDefault(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))
	t.Setenv("VG_LOG_JSON", "false")

	_, stderr, err := execute(t, configPath, "-v", "image", "1", "--save")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved output")
	assert.NotContains(t, stderr, `"msg":"Saved output"`)
}

func TestConfigShow(t *testing.T) {
	srv := newTestAPI(t)
	configPath, _ := testEnv(t, srv)

	out, _, err := execute(t, configPath, "config", "show", "--format", "json")
	require.NoError(t, err)
	var cfg map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, srv.URL, cfg["api"]["base_url"])
	assert.EqualValues(t, 0, cfg["api"]["retries"])

	out, _, err = execute(t, configPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# vg configuration")
	assert.Contains(t, out, "base_url")

	out, _, err = execute(t, configPath, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestVersionCommand(t *testing.T) {
	configPath, _ := testEnv(t, newTestAPI(t))

	out, _, err := execute(t, configPath, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "go_version")
	assert.Contains(t, info, "commit_hash")

	out, _, err = execute(t, configPath, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vg ")
}
