package model

import (
	"path"
	"strings"
)

// File is one image submitted for upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// AllowedContentTypes are the image types the site accepts.
var AllowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Extension returns the lowercased file extension including the dot, or
// one derived from the content type.
func (f File) Extension() string {
	if ext := strings.ToLower(path.Ext(f.Name)); ext != "" {
		return ext
	}
	switch f.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}

// Result is the outcome of a successful batch. URL is the first completed
// upload; URLs holds all of them in completion order.
type Result struct {
	URL  string   `json:"url,omitempty"`
	URLs []string `json:"urls,omitempty"`
}
