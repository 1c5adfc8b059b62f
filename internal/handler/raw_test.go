package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalangge1/vite-plugin-fs/internal/fs"
)

func TestRaw_File(t *testing.T) {
	r := newTestRouter(fs.NewLocalFS(setupRoot(t)))

	w := doGet(r, "/raw/a.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fileContent, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestRaw_Directory(t *testing.T) {
	r := newTestRouter(fs.NewLocalFS(setupRoot(t)))

	w := doGet(r, "/raw/sub")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRaw_NotFound(t *testing.T) {
	r := newTestRouter(fs.NewLocalFS(setupRoot(t)))

	w := doGet(r, "/raw/missing.txt")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
