// file: internals/features/registration/storage/store.go
package storage

import (
	"context"
	"errors"

	"github.com/wardix/nusafiber-reg-be/internals/features/registration/dto"
)

var (
	// ErrDuplicate homepassId sudah terdaftar (unique index kena saat insert).
	ErrDuplicate = errors.New("registrasi duplikat")

	// ErrNotFound homepassId tidak ditemukan.
	ErrNotFound = errors.New("registrasi tidak ditemukan")

	// ErrUnsupported operasi tidak tersedia pada driver ini (driver file
	// tidak punya duplicate-check maupun lookup per homepassId).
	ErrUnsupported = errors.New("operasi tidak didukung driver ini")
)

// RegistrationStore kontrak penyimpanan registrasi. Dibangun sekali saat
// startup, di-inject ke controller, ditutup saat shutdown.
type RegistrationStore interface {
	Driver() string

	Exists(ctx context.Context, homepassID string) (bool, error)
	Insert(ctx context.Context, rec *dto.RegistrationRecord) error
	List(ctx context.Context, limit, offset int) ([]dto.RegistrationRecord, int64, error)
	GetByHomepassID(ctx context.Context, homepassID string) (dto.RegistrationRecord, error)

	Ping(ctx context.Context) error
	Close() error
}
