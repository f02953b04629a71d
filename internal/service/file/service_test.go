package file

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.files[path] = data
	return path, nil
}

func (m *memoryStorage) Delete(ctx context.Context, path string) error {
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "http://files/" + path, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestFileService_UploadEmployeePhoto_Downsizes(t *testing.T) {
	// Setup
	store := &memoryStorage{files: map[string][]byte{}}
	svc := NewFileService(store)

	// Act
	path, err := svc.UploadEmployeePhoto(context.Background(), "EMP001", pngBytes(t, 1024, 768))

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "employees/EMP001/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(store.files[path]))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 384, cfg.Height)
}

func TestFileService_UploadEmployeePhoto_KeepsSmallImages(t *testing.T) {
	store := &memoryStorage{files: map[string][]byte{}}
	svc := NewFileService(store)

	path, err := svc.UploadEmployeePhoto(context.Background(), "EMP002", pngBytes(t, 200, 300))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(store.files[path]))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestFileService_UploadEmployeePhoto_InvalidImage(t *testing.T) {
	svc := NewFileService(&memoryStorage{files: map[string][]byte{}})

	_, err := svc.UploadEmployeePhoto(context.Background(), "EMP003", []byte("not an image"))

	assert.ErrorIs(t, err, employee.ErrInvalidPhoto)
}

func TestFitWithin_Portrait(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 600, 1200))
	got := fitWithin(img, 512)
	assert.Equal(t, 256, got.Bounds().Dx())
	assert.Equal(t, 512, got.Bounds().Dy())
}

// pngHeaderOnly returns a PNG signature and IHDR chunk declaring w x h,
// with no pixel data behind it.
func pngHeaderOnly(w, h uint32) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	chunk := append([]byte("IHDR"), ihdr...)
	_ = binary.Write(buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestFileService_UploadEmployeePhoto_RejectsOversizedDimensions(t *testing.T) {
	// Setup
	store := &memoryStorage{files: map[string][]byte{}}
	svc := NewFileService(store)

	// Act
	_, err := svc.UploadEmployeePhoto(context.Background(), "EMP004", pngHeaderOnly(60000, 60000))

	// Assert
	assert.ErrorIs(t, err, employee.ErrInvalidPhoto)
	assert.Empty(t, store.files)
}

func TestFileService_UploadEmployeePhoto_RejectsTooManyPixels(t *testing.T) {
	svc := NewFileService(&memoryStorage{files: map[string][]byte{}})

	_, err := svc.UploadEmployeePhoto(context.Background(), "EMP005", pngHeaderOnly(6000, 5000))

	assert.ErrorIs(t, err, employee.ErrInvalidPhoto)
}
