package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedFileType = errors.New("unsupported file format, only PDF CVs are accepted")

type StoredFile struct {
	Filename    string
	Path        string
	ContentType string
	Size        int64
	Content     []byte
}

type StorageService interface {
	SaveCV(file *multipart.FileHeader) (*StoredFile, error)
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveCV checks that the upload really is a PDF and writes it under a
// generated name.
func (s *storageService) SaveCV(file *multipart.FileHeader) (*StoredFile, error) {
	content, err := ReadUpload(file)
	if err != nil {
		return nil, err
	}

	if err := ValidatePDF(file.Filename, content); err != nil {
		return nil, err
	}

	uniqueFilename := fmt.Sprintf("cv_%s.pdf", uuid.New().String())
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Filename:    uniqueFilename,
		Path:        filePath,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := filepath.Join(s.uploadPath, filepath.Base(filename))
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ReadUpload reads a multipart file fully into memory.
func ReadUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return content, nil
}

// ValidatePDF checks both the extension and the leading bytes.
func ValidatePDF(filename string, content []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) && http.DetectContentType(content) != "application/pdf" {
		return fmt.Errorf("%w: content is not a PDF", ErrUnsupportedFileType)
	}

	return nil
}
