// file: internals/features/registration/storage/file_store.go
package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/dto"
)

const logFileName = "registrations.jsonl"

// FileStore backend append-only (driver file): satu baris JSON kompak per
// registrasi di registrations.jsonl plus snapshot pretty per submission.
// Tidak ada uniqueness, pagination, maupun lookup per homepassId.
// Append konkuren tidak dikoordinasi; risiko interleaving diterima apa adanya.
type FileStore struct {
	dataDir string
	logPath string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("gagal membuat data dir: %w", err)
	}
	return &FileStore{
		dataDir: dataDir,
		logPath: filepath.Join(dataDir, logFileName),
	}, nil
}

func (s *FileStore) Driver() string { return configs.DriverFile }

func (s *FileStore) Exists(ctx context.Context, homepassID string) (bool, error) {
	return false, ErrUnsupported
}

func (s *FileStore) Insert(ctx context.Context, rec *dto.RegistrationRecord) error {
	line, err := sonic.Marshal(rec)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}

	// snapshot pretty per submission, best-effort setelah log utama tertulis
	pretty, err := sonic.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	snapshot := filepath.Join(s.dataDir, fmt.Sprintf("registration_%d.json", rec.SubmittedAt.UnixMilli()))
	return os.WriteFile(snapshot, pretty, 0o644)
}

// List mengembalikan seluruh isi log, diparse per baris. Pagination diabaikan.
func (s *FileStore) List(ctx context.Context, limit, offset int) ([]dto.RegistrationRecord, int64, error) {
	raw, err := os.ReadFile(s.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.RegistrationRecord{}, 0, nil
		}
		return nil, 0, err
	}

	lines := strings.Split(string(raw), "\n")
	out := make([]dto.RegistrationRecord, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec dto.RegistrationRecord
		if err := sonic.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("⚠️ baris %d di %s rusak, dilewati: %v", i+1, logFileName, err)
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (s *FileStore) GetByHomepassID(ctx context.Context, homepassID string) (dto.RegistrationRecord, error) {
	return dto.RegistrationRecord{}, ErrUnsupported
}

func (s *FileStore) Ping(ctx context.Context) error { return nil }

func (s *FileStore) Close() error { return nil }
