package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"path/filepath"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/factory-attendance-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// MaxPhotoEdge bounds the longest side of a stored employee photo.
const MaxPhotoEdge = 512

// Source photos larger than this are rejected before decoding.
const (
	MaxSourceEdge   = 8000
	MaxSourcePixels = 24_000_000
)

type FileService interface {
	// UploadEmployeePhoto decodes, downsizes and stores a registration photo
	UploadEmployeePhoto(ctx context.Context, employeeCode string, data []byte) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadEmployeePhoto(ctx context.Context, employeeCode string, data []byte) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", employee.ErrInvalidPhoto, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxSourceEdge || cfg.Height > MaxSourceEdge ||
		cfg.Width*cfg.Height > MaxSourcePixels {
		return "", fmt.Errorf("%w: %dx%d exceeds the size limit", employee.ErrInvalidPhoto, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", employee.ErrInvalidPhoto, err)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitWithin(img, MaxPhotoEdge), &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	// Path: employees/{code}/{uuid}.jpg, always JPEG after re-encoding
	path := filepath.ToSlash(filepath.Join("employees", employeeCode, uuid.New().String()+".jpg"))

	uploadedPath, err := s.storage.Upload(ctx, buf, path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}

// ==================== HELPER FUNCTIONS ====================

// fitWithin scales src down so neither side exceeds maxEdge, keeping the
// aspect ratio. Smaller images are returned unchanged.
func fitWithin(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
