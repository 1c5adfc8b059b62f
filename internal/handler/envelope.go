package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// envelopeKind tags the closed set of response envelope variants.
type envelopeKind int

const (
	// kindMismatch means the path exists but the requested command does not
	// apply to its type. On the wire it is indistinguishable from a generic
	// server error.
	kindMismatch envelopeKind = iota
	kindFile
	kindDirectory
	kindStats
	kindError
)

// fileBody carries full file contents. Data is base64-encoded by the JSON
// serializer; Mime is detected from the content.
type fileBody struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
	Mime string `json:"mime"`
}

type dirEntryBody struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir"`
}

type dirNamesBody struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

type dirEntriesBody struct {
	Type  string         `json:"type"`
	Items []dirEntryBody `json:"items"`
}

type statsBody struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"modTime"`
	IsDirectory bool      `json:"isDirectory"`
}

// envelope is the single result produced per request, before HTTP
// serialization. Exactly one variant is populated, selected by kind.
type envelope struct {
	kind envelopeKind

	file     *fileBody
	names    []string       // kindDirectory, plain listing
	entries  []dirEntryBody // kindDirectory, detailed listing
	detailed bool
	stats    *statsBody

	code    int    // kindError
	message string // kindError, optional plain-text body
}

func mismatchEnvelope() envelope {
	return envelope{kind: kindMismatch}
}

func fileEnvelope(data []byte, mime string) envelope {
	return envelope{kind: kindFile, file: &fileBody{Type: "file", Data: data, Mime: mime}}
}

func dirNamesEnvelope(names []string) envelope {
	return envelope{kind: kindDirectory, names: names}
}

func dirEntriesEnvelope(entries []dirEntryBody) envelope {
	return envelope{kind: kindDirectory, entries: entries, detailed: true}
}

func statsEnvelope(name string, size int64, modTime time.Time, isDir bool) envelope {
	return envelope{kind: kindStats, stats: &statsBody{
		Type:        "stats",
		Name:        name,
		Size:        size,
		ModTime:     modTime,
		IsDirectory: isDir,
	}}
}

func errorEnvelope(code int, message string) envelope {
	return envelope{kind: kindError, code: code, message: message}
}

// write maps the envelope onto the HTTP response. The switch enumerates
// every kind; anything unrecognized degrades to an opaque 500, same as a
// type mismatch.
func (e envelope) write(c *gin.Context) {
	switch e.kind {
	case kindFile:
		c.JSON(http.StatusOK, e.file)
	case kindDirectory:
		if e.detailed {
			c.JSON(http.StatusOK, dirEntriesBody{Type: "directory", Items: e.entries})
		} else {
			c.JSON(http.StatusOK, dirNamesBody{Type: "directory", Items: e.names})
		}
	case kindStats:
		c.JSON(http.StatusOK, e.stats)
	case kindError:
		if e.message == "" {
			c.Status(e.code)
		} else {
			c.String(e.code, e.message)
		}
	case kindMismatch:
		c.Status(http.StatusInternalServerError)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
