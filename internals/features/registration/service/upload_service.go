// file: internals/features/registration/service/upload_service.go
package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// UploadService menyimpan file upload mentah ke direktori konten lokal.
type UploadService struct {
	Dir string
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{Dir: dir}
}

// Save menulis isi file ke disk dan mengembalikan nama generate-nya:
// {prefix}_{unixMilli}{ext}. Dua upload dengan prefix sama di milidetik yang
// sama bisa tabrakan nama; risiko diterima tanpa suffix uniqueness.
func (s *UploadService) Save(fh *multipart.FileHeader, prefix string) (string, error) {
	// MkdirAll aman dipanggil berulang/konkuren
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("gagal menyiapkan upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixMilli(), filepath.Ext(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateUpload menolak file di luar allow-list MIME atau melebihi maxBytes.
// MIME dideteksi dari isi file, bukan dari header client.
func ValidateUpload(fh *multipart.FileHeader, field string, allowed []string, maxBytes int64) error {
	if fh.Size > maxBytes {
		return fmt.Errorf("Ukuran %s melebihi batas %d MB", field, maxBytes/(1024*1024))
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("Gagal membaca %s", field)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("Gagal mendeteksi tipe %s", field)
	}
	for _, a := range allowed {
		if mt.Is(a) {
			return nil
		}
	}
	return fmt.Errorf("Tipe %s tidak didukung (%s)", field, mt.String())
}
