// file: internals/features/registration/storage/postgres_store.go
package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	database "github.com/wardix/nusafiber-reg-be/internals/databases"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/dto"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/model"
)

// PostgresStore backend relasional (driver postgres) di atas GORM.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&model.RegistrationModel{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Driver() string { return configs.DriverPostgres }

func (s *PostgresStore) Exists(ctx context.Context, homepassID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.RegistrationModel{}).
		Where("homepass_id = ?", homepassID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec *dto.RegistrationRecord) error {
	m := rec.ToModel()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		// race check-then-insert ditutup oleh unique index: insert yang kalah
		// balapan tetap dipetakan ke duplikat
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	rec.ID = m.ID
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]dto.RegistrationRecord, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.RegistrationModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []model.RegistrationModel
	err := q.Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	return dto.FromModels(ms), total, nil
}

func (s *PostgresStore) GetByHomepassID(ctx context.Context, homepassID string) (dto.RegistrationRecord, error) {
	var m model.RegistrationModel
	err := s.db.WithContext(ctx).
		Where("homepass_id = ?", homepassID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RegistrationRecord{}, ErrNotFound
		}
		return dto.RegistrationRecord{}, err
	}
	return dto.FromModel(&m), nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return database.Ping(s.db)
}

func (s *PostgresStore) Close() error {
	database.Close(s.db)
	return nil
}
