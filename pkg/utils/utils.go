package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadMultipartFile(file multipart.File) ([]byte, error)
	DecodeBase64Image(data string) ([]byte, error)
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 10 * 1024 * 1024,
	}
}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrUnsupportedFile = errors.New("unsupported image type")
)

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedFile
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return ErrUnsupportedFile
	}

	return nil
}

func (u *utils) ReadMultipartFile(file multipart.File) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, u.maxFileSize+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// DecodeBase64Image accepts both bare base64 payloads and data URLs
// ("data:image/png;base64,....") the kiosk frontend sends.
func (u *utils) DecodeBase64Image(data string) ([]byte, error) {
	if data == "" {
		return nil, ErrNoFile
	}

	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	if int64(len(decoded)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}

	return decoded, nil
}
