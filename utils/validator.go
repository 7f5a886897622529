package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge  = errors.New("file too large")
	ErrFileExtension = errors.New("invalid file extension")
	ErrFileType      = errors.New("invalid file type")
	ErrFileEmpty     = errors.New("file is empty")
)

// sniffLen is how many bytes http.DetectContentType looks at.
const sniffLen = 512

type FileValidator struct {
	// extension -> content types it may carry
	formats map[string][]string
	maxSize int64
}

// NewImageValidator accepts the common web image formats up to maxSizeMB.
func NewImageValidator(maxSizeMB int) *FileValidator {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &FileValidator{
		formats: map[string][]string{
			".jpg":  {"image/jpeg"},
			".jpeg": {"image/jpeg"},
			".png":  {"image/png"},
			".webp": {"image/webp"},
			".gif":  {"image/gif"},
		},
		maxSize: int64(maxSizeMB) << 20,
	}
}

// ValidateFile returns the sniffed content type of an accepted upload. The
// content has to match the type its extension promises.
func (v *FileValidator) ValidateFile(fh *multipart.FileHeader) (string, error) {
	if fh.Size > v.maxSize {
		return "", fmt.Errorf("%w (max %d MB)", ErrFileTooLarge, v.maxSize>>20)
	}

	allowed, ok := v.formats[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		return "", ErrFileExtension
	}

	head, err := readHead(fh)
	if err != nil {
		return "", err
	}

	detected := strings.ToLower(http.DetectContentType(head))
	for _, ct := range allowed {
		if detected == ct {
			return detected, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileType, detected)
}

func readHead(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	switch {
	case n == 0:
		return nil, ErrFileEmpty
	case err != nil && !errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return buf[:n], nil
}
