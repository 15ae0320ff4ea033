package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxEvidenceSize = 10 << 20 // 10 MB

var allowedEvidenceTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// UploadEvidence stores a geotagged photo and returns the opaque reference
// the submission form attaches to the concern. The file content is not
// inspected beyond size and mime sanity; the concern core only ever carries
// the reference string.
func UploadEvidence(c *gin.Context) {
	file, err := c.FormFile("evidence")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evidence file is required"})
		return
	}

	if file.Size > maxEvidenceSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evidence file exceeds the 10MB limit"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedEvidenceTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evidence must be a JPEG, PNG or GIF image"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	evidenceDir := filepath.Join(uploadPath, "evidence")
	if err := os.MkdirAll(evidenceDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	storedName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	storedPath := filepath.Join(evidenceDir, storedName)

	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store evidence file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"evidence_url": "/evidence/" + storedName,
	})
}
