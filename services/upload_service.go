package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/firmenportal/models"
	"github.com/akinalp/firmenportal/pkg"
)

// UploadService interface'i — medya dosyası yükleme.
type UploadService interface {
	// SaveFile, yüklenen dosyayı diske kaydeder ve public URL'ini döner.
	// İkinci dönüş değeri, MIME type'tan türetilen medya türüdür.
	SaveFile(file multipart.File, header *multipart.FileHeader) (string, models.MediaType, error)
	// DeleteFile, daha önce kaydedilmiş bir dosyayı URL'inden siler.
	DeleteFile(fileURL string) error
}

type uploadService struct {
	uploadDir string
	maxSize   int64
}

// allowedMimeTypes, kabul edilen dosya türleri ve uzantıları.
// Medya kütüphanesi sadece görsel ve video barındırır.
var allowedMimeTypes = map[string]struct {
	ext       string
	mediaType models.MediaType
}{
	"image/jpeg":    {".jpg", models.MediaTypeImage},
	"image/png":     {".png", models.MediaTypeImage},
	"image/gif":     {".gif", models.MediaTypeImage},
	"image/webp":    {".webp", models.MediaTypeImage},
	"image/svg+xml": {".svg", models.MediaTypeImage},
	"video/mp4":     {".mp4", models.MediaTypeVideo},
	"video/webm":    {".webm", models.MediaTypeVideo},
}

// NewUploadService, constructor. Upload dizinini yoksa oluşturur.
func NewUploadService(uploadDir string, maxSize int64) (UploadService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &uploadService{uploadDir: uploadDir, maxSize: maxSize}, nil
}

func (s *uploadService) SaveFile(file multipart.File, header *multipart.FileHeader) (string, models.MediaType, error) {
	if header.Size > s.maxSize {
		return "", "", fmt.Errorf("%w: file too large (max %d bytes)", pkg.ErrBadRequest, s.maxSize)
	}

	contentType := header.Header.Get("Content-Type")
	allowed, ok := allowedMimeTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported file type %q", pkg.ErrBadRequest, contentType)
	}

	// Dosya adı çakışmalarını önlemek için rastgele prefix eklenir.
	prefixBytes := make([]byte, 8)
	if _, err := rand.Read(prefixBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate file prefix: %w", err)
	}
	filename := hex.EncodeToString(prefixBytes) + "_" + sanitizeFilename(header.Filename, allowed.ext)

	destPath := filepath.Join(s.uploadDir, filename)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		// Yarım kalan dosyayı diskte bırakma.
		os.Remove(destPath)
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	log.Printf("[upload] file saved: %s (%d bytes)", filename, header.Size)

	return "/api/uploads/" + filename, allowed.mediaType, nil
}

func (s *uploadService) DeleteFile(fileURL string) error {
	filename := strings.TrimPrefix(fileURL, "/api/uploads/")
	if filename == fileURL || filename == "" {
		return fmt.Errorf("%w: not a managed upload url", pkg.ErrBadRequest)
	}

	// Path traversal koruması — URL'den gelen isim dizin ayıracı içeremez.
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: invalid filename", pkg.ErrBadRequest)
	}

	destPath := filepath.Join(s.uploadDir, filename)
	if err := os.Remove(destPath); err != nil {
		if os.IsNotExist(err) {
			return pkg.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	log.Printf("[upload] file deleted: %s", filename)
	return nil
}

// sanitizeFilename, kullanıcıdan gelen dosya adını güvenli hale getirir:
// path bileşenleri atılır, tehlikeli karakterler alt çizgiye çevrilir,
// uzantı MIME type'a göre zorlanır.
func sanitizeFilename(name, ext string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	safe := b.String()
	if safe == "" {
		safe = "file"
	}
	if len(safe) > 80 {
		safe = safe[:80]
	}

	return safe + ext
}
