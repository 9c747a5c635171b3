package utils

import (
	"mime/multipart"
	"strings"
)

// IsImage checks the declared MIME type of an uploaded file.
func IsImage(file *multipart.FileHeader) bool {
	return strings.HasPrefix(file.Header.Get("Content-Type"), "image/")
}
