package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrFileTooLarge = errors.New("uploaded file exceeds size limit")

// SourceFile is an uploaded document staged on disk. Name is the client
// supplied file name and decides the format; Path is where the bytes live.
type SourceFile struct {
	Name string
	Path string
}

// Ext returns the lower-cased extension of Name without the dot.
func (f SourceFile) Ext() string {
	return normalizeExt(filepath.Ext(f.Name))
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader) (SourceFile, error)
	DeleteFile(file SourceFile) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stages an upload under a unique name. Any extension is accepted;
// format support is decided later by the document parser.
func (s *storageService) SaveFile(file *multipart.FileHeader) (SourceFile, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return SourceFile{}, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, file.Filename, file.Size)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := writeFile(filePath, src); err != nil {
		return SourceFile{}, fmt.Errorf("failed to save file: %w", err)
	}

	return SourceFile{Name: filepath.Base(file.Filename), Path: filePath}, nil
}

// writeFile copies src to path. A partially written file is removed.
func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			return errors.Join(err, rmErr)
		}
		return err
	}
	return nil
}

func (s *storageService) DeleteFile(file SourceFile) error {
	if err := os.Remove(file.Path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
