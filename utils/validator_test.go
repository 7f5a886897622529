package utils

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// formFile builds a FileHeader the same way gin does for an incoming upload.
func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["image"], 1)
	return form.File["image"][0]
}

func TestImageValidator(t *testing.T) {
	v := NewImageValidator(1)

	mime, err := v.ValidateFile(formFile(t, "photo.PNG", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = v.ValidateFile(formFile(t, "photo.jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2<<20)...)
	tests := []struct {
		name     string
		filename string
		content  []byte
		want     error
	}{
		{"wrong extension", "notes.txt", pngHeader, ErrFileExtension},
		{"text named png", "fake.png", []byte("just some text, not an image"), ErrFileType},
		{"png named jpg", "photo.jpg", pngHeader, ErrFileType},
		{"empty", "empty.png", nil, ErrFileEmpty},
		{"too large", "big.png", big, ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateFile(formFile(t, tt.filename, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
