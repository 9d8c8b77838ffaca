// file: internals/features/registration/model/registration_model.go
package model

import (
	"time"
)

// RegistrationModel merepresentasikan tabel registrations
type RegistrationModel struct {
	ID uint `json:"id" gorm:"primaryKey;autoIncrement;column:id"`

	HomepassID   string `json:"homepassId" gorm:"type:varchar(20);not null;uniqueIndex:uq_registrations_homepass_id;column:homepass_id"`
	CustomerName string `json:"customerName" gorm:"type:varchar(100);not null;column:customer_name"`
	PhoneNumber  string `json:"phoneNumber" gorm:"type:varchar(13);not null;column:phone_number"`

	Latitude  float64 `json:"lat" gorm:"type:decimal(10,7);not null;column:latitude"`
	Longitude float64 `json:"lng" gorm:"type:decimal(10,7);not null;column:longitude"`
	Address   string  `json:"address" gorm:"type:text;not null;column:address"`

	KTPFileName        *string `json:"ktpFileName,omitempty" gorm:"type:text;column:ktp_file_name"`
	HousePhotoFileName *string `json:"housePhotoFileName,omitempty" gorm:"type:text;column:house_photo_file_name"`

	SubmittedAt time.Time `json:"submittedAt" gorm:"not null;index:idx_registrations_submitted_at;column:submitted_at"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName mengikat model ke tabel registrations
func (RegistrationModel) TableName() string { return "registrations" }
