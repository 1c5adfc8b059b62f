package handler

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// Raw serves the file bytes directly with a detected Content-Type, bypassing
// the JSON envelope. Useful for pointing a browser tab straight at a file.
func (h *ReadHandler) Raw(c *gin.Context) {
	rel := h.resolve(c.Param("path"))

	info, err := h.fsys.Stat(rel)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stat failed"})
		return
	}

	if !info.IsRegular() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is not a regular file"})
		return
	}

	content, err := h.fsys.ReadFile(rel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("failed to read file: %v", err),
		})
		return
	}

	c.Data(http.StatusOK, mimetype.Detect(content).String(), content)
}
