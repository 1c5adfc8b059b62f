// Package handler provides the HTTP handlers for the filesystem API.
package handler

import (
	"errors"
	iofs "io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dalangge1/vite-plugin-fs/internal/fs"
	"github.com/dalangge1/vite-plugin-fs/internal/logging"
)

// Command values recognized by the read router.
const (
	cmdReadFile        = "readfile"
	cmdReadDir         = "readdir"
	cmdReadDirDetailed = "readdir-detailed"
	cmdStat            = "stat"
)

// Resolver maps a request URL path to a path understood by the FileSystem.
// Rooting and sandboxing decisions live here, not in the router.
type Resolver func(httpPath string) string

// DefaultResolver cleans the URL path and strips the leading slash, yielding
// a root-relative path. Cleaning removes any ".." segments, so the result
// never escapes the root.
func DefaultResolver(httpPath string) string {
	return strings.TrimPrefix(path.Clean("/"+httpPath), "/")
}

// ReadHandler maps a request path plus an optional command query parameter
// to a filesystem read operation and shapes the result into a response
// envelope. Each request is handled independently; the handler holds no
// mutable state.
type ReadHandler struct {
	fsys    fs.FileSystem
	resolve Resolver
	log     *logging.Logger
}

// NewReadHandler creates a read handler over the given filesystem and path resolver.
func NewReadHandler(fsys fs.FileSystem, resolve Resolver, log *logging.Logger) *ReadHandler {
	return &ReadHandler{fsys: fsys, resolve: resolve, log: log}
}

// Serve handles a read request. The path is stat'ed first: a missing path is
// a 404 and any other stat failure is a 500, regardless of command. After a
// successful stat the command (or the file-then-directory fallback when no
// command is given) selects the operation.
func (h *ReadHandler) Serve(c *gin.Context) {
	httpPath := c.Param("path")
	if httpPath == "" {
		httpPath = c.Request.URL.Path
	}
	rel := h.resolve(httpPath)

	info, err := h.fsys.Stat(rel)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			// Data rather than Status: it marks the response written,
			// so gin's no-route fallback cannot append its default
			// "404 page not found" body.
			c.Data(http.StatusNotFound, "text/plain", nil)
			return
		}
		h.log.Warn("stat failed", zap.String("path", rel), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	var env envelope
	if cmd, ok := c.GetQuery("command"); ok {
		env = h.dispatch(cmd, rel, info)
	} else {
		env = h.auto(rel, info)
	}
	env.write(c)
}

func (h *ReadHandler) dispatch(cmd, rel string, info fs.FileInfo) envelope {
	switch cmd {
	case cmdReadFile:
		return h.readFile(rel, info)
	case cmdReadDir:
		return h.readDir(rel, info, false)
	case cmdReadDirDetailed:
		return h.readDir(rel, info, true)
	case cmdStat:
		return h.stat(info)
	default:
		return errorEnvelope(http.StatusInternalServerError, "Unknown command "+cmd)
	}
}

// auto handles the no-command case: file takes precedence over directory.
func (h *ReadHandler) auto(rel string, info fs.FileInfo) envelope {
	switch {
	case info.IsRegular():
		return h.readFile(rel, info)
	case info.IsDir:
		return h.readDir(rel, info, false)
	default:
		return mismatchEnvelope()
	}
}

func (h *ReadHandler) readFile(rel string, info fs.FileInfo) envelope {
	if !info.IsRegular() {
		return mismatchEnvelope()
	}
	data, err := h.fsys.ReadFile(rel)
	if err != nil {
		h.log.Warn("read failed", zap.String("path", rel), zap.Error(err))
		return errorEnvelope(http.StatusInternalServerError, "")
	}
	return fileEnvelope(data, mimetype.Detect(data).String())
}

func (h *ReadHandler) readDir(rel string, info fs.FileInfo, detailed bool) envelope {
	if !info.IsDir {
		return mismatchEnvelope()
	}
	entries, err := h.fsys.ReadDir(rel)
	if err != nil {
		h.log.Warn("readdir failed", zap.String("path", rel), zap.Error(err))
		return errorEnvelope(http.StatusInternalServerError, "")
	}

	if detailed {
		// Only plain files and directories; symlinks, sockets and the
		// like are dropped.
		items := []dirEntryBody{}
		for _, e := range entries {
			if e.IsDir || e.IsRegular() {
				items = append(items, dirEntryBody{Name: e.Name, Dir: e.IsDir})
			}
		}
		return dirEntriesEnvelope(items)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return dirNamesEnvelope(names)
}

func (h *ReadHandler) stat(info fs.FileInfo) envelope {
	if !info.IsDir && !info.IsRegular() {
		return mismatchEnvelope()
	}
	return statsEnvelope(info.Name, info.Size, info.ModTime, info.IsDir)
}
