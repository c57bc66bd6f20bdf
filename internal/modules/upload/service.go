package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

const (
	DefaultMaxBytes = 5 * 1024 * 1024
	DefaultBaseDir  = "./uploads"
	StaticURLBase   = "/api/v1/admin/uploads"
)

// allowedMimeTypes maps accepted ID-card image types to their file extension.
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Repository interface {
	Create(ctx context.Context, u *domain.Upload) error
	ListUnreferenced(ctx context.Context, before time.Time, limit int) ([]domain.Upload, error)
	Delete(ctx context.Context, id string) error
}

// Service saves ID-card images to local disk and records them.
type Service struct {
	repo       Repository
	baseDir    string
	staticBase string
	maxBytes   int64
	now        func() time.Time
}

func NewService(repo Repository, baseDir, staticBase string, maxBytes int64) *Service {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{repo: repo, baseDir: baseDir, staticBase: staticBase, maxBytes: maxBytes, now: time.Now}
}

func (s *Service) BaseDir() string { return s.baseDir }

func (s *Service) MaxBytes() int64 { return s.maxBytes }

// ParseSide maps the form value to an upload kind.
func ParseSide(side string) (domain.UploadKind, error) {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "front":
		return domain.UploadIDFront, nil
	case "back":
		return domain.UploadIDBack, nil
	}
	return "", ErrInvalidSide
}

// Upload stores the file under baseDir/YYYY/MM/DD/<uuid>.<ext>. The type is
// sniffed from content; the client's file name is ignored.
func (s *Service) Upload(ctx context.Context, kind domain.UploadKind, fileHeader *multipart.FileHeader, clientIP string) (*domain.Upload, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.NewString()
	relPath := path.Join(relDir, id+ext)
	absPath := filepath.Join(s.baseDir, filepath.FromSlash(relPath))

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	written, err := io.Copy(dst, io.LimitReader(file, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(absPath)
		return nil, ErrFileTooLarge
	}

	u := &domain.Upload{
		ID:        id,
		Kind:      kind,
		FilePath:  relPath,
		URL:       s.staticBase + "/" + relPath,
		MimeType:  mimeType,
		Size:      written,
		ClientIP:  clientIP,
		CreatedAt: now.UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to save upload record: %w", err)
	}
	return u, nil
}

const purgeBatch = 100

// PurgeUnreferenced removes ID-card images older than maxAge that no booking
// refers to, file first and then the record. A file already missing from
// disk does not stop the record from being removed.
func (s *Service) PurgeUnreferenced(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.now().Add(-maxAge)
	removed := 0
	for {
		batch, err := s.repo.ListUnreferenced(ctx, cutoff, purgeBatch)
		if err != nil {
			return removed, fmt.Errorf("list unreferenced uploads: %w", err)
		}
		for _, u := range batch {
			absPath := filepath.Join(s.baseDir, filepath.FromSlash(u.FilePath))
			if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
				return removed, fmt.Errorf("remove %s: %w", u.FilePath, err)
			}
			if err := s.repo.Delete(ctx, u.ID); err != nil {
				return removed, fmt.Errorf("delete upload %s: %w", u.ID, err)
			}
			removed++
		}
		if len(batch) < purgeBatch {
			return removed, nil
		}
	}
}
