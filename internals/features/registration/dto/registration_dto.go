// file: internals/features/registration/dto/registration_dto.go
package dto

import (
	"time"

	"github.com/wardix/nusafiber-reg-be/internals/features/registration/model"
)

//
// ========== INPUT ==========
//

// LocationInput hasil parse field multipart "location" (JSON string).
// Lat/Lng pointer supaya koordinat yang hilang ketahuan (bukan jadi 0).
type LocationInput struct {
	Lat     *float64 `json:"lat" validate:"required"`
	Lng     *float64 `json:"lng" validate:"required"`
	Address string   `json:"address" validate:"required"`
}

// RegisterInput gabungan field terstruktur yang divalidasi sekaligus
// (semua field dicek independen, error dikumpulkan semua).
type RegisterInput struct {
	HomepassID   string        `json:"homepassId" validate:"required,homepass_id"`
	CustomerName string        `json:"customerName" validate:"required,customer_name"`
	PhoneNumber  string        `json:"phoneNumber" validate:"required,phone_id"`
	Location     LocationInput `json:"location"`
}

//
// ========== RECORD (wire + JSONL) ==========
//

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// RegistrationRecord bentuk kanonik satu registrasi: dipakai di response API
// dan sebagai baris JSONL pada driver file. Field bentukan store (id,
// createdAt, updatedAt) hanya terisi pada driver postgres.
type RegistrationRecord struct {
	ID                 uint       `json:"id,omitempty"`
	HomepassID         string     `json:"homepassId"`
	CustomerName       string     `json:"customerName"`
	PhoneNumber        string     `json:"phoneNumber"`
	Location           Location   `json:"location"`
	KTPFileName        *string    `json:"ktpFileName,omitempty"`
	HousePhotoFileName *string    `json:"housePhotoFileName,omitempty"`
	SubmittedAt        time.Time  `json:"submittedAt"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

func (r *RegistrationRecord) ToModel() model.RegistrationModel {
	return model.RegistrationModel{
		HomepassID:         r.HomepassID,
		CustomerName:       r.CustomerName,
		PhoneNumber:        r.PhoneNumber,
		Latitude:           r.Location.Lat,
		Longitude:          r.Location.Lng,
		Address:            r.Location.Address,
		KTPFileName:        r.KTPFileName,
		HousePhotoFileName: r.HousePhotoFileName,
		SubmittedAt:        r.SubmittedAt,
	}
}

func FromModel(m *model.RegistrationModel) RegistrationRecord {
	created := m.CreatedAt
	updated := m.UpdatedAt
	return RegistrationRecord{
		ID:           m.ID,
		HomepassID:   m.HomepassID,
		CustomerName: m.CustomerName,
		PhoneNumber:  m.PhoneNumber,
		Location: Location{
			Lat:     m.Latitude,
			Lng:     m.Longitude,
			Address: m.Address,
		},
		KTPFileName:        m.KTPFileName,
		HousePhotoFileName: m.HousePhotoFileName,
		SubmittedAt:        m.SubmittedAt,
		CreatedAt:          &created,
		UpdatedAt:          &updated,
	}
}

func FromModels(ms []model.RegistrationModel) []RegistrationRecord {
	out := make([]RegistrationRecord, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

//
// ========== RESPONSE (POST /api/register) ==========
//

type RegisterResponse struct {
	HomepassID         string    `json:"homepassId"`
	CustomerName       string    `json:"customerName"`
	SubmittedAt        time.Time `json:"submittedAt"`
	ReferenceID        string    `json:"referenceId"`
	KTPFileName        string    `json:"ktpFileName"`
	HousePhotoFileName string    `json:"housePhotoFileName,omitempty"`
}
