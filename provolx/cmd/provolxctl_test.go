package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	noColor, jsonOutput = false, false
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestBenchCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	out, err := run(t, "bench", "--ai-url", srv.URL, "--health-requests", "2", "--chat-requests", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "BENCHMARK SUMMARY")
	assert.Contains(t, out, "Successful tests: 2")
	assert.Contains(t, out, "Failed tests: 0")
	assert.NotContains(t, out, "Failed tests:\n")
}

func TestMigrateCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "backend"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "backend", ".env"),
		[]byte("AI_SERVICE_URL=http://localhost:3001\n"), 0o644))

	out, err := run(t, "migrate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No old AI service found to backup")
	assert.Contains(t, out, "Next steps:")

	data, err := os.ReadFile(filepath.Join(root, "backend", ".env"))
	require.NoError(t, err)
	assert.Equal(t, "AI_SERVICE_URL=http://localhost:8001\n", string(data))
}

func TestMigrateCommandRefusesExistingBackup(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ai-service"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ai-service-backup"), 0o755))

	_, err := run(t, "migrate", "--root", root)
	assert.Error(t, err)
}
