// file: internals/features/registration/dto/registration_validator.go
package dto

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	// XXXX-XXXXX-HNNNNN: 4 alnum, 5 alnum, literal "H", 5 digit
	homepassRe = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{5}-H[0-9]{5}$`)

	// diawali 0, angka semua
	phoneRe = regexp.MustCompile(`^0[0-9]+$`)
)

// NewValidator membuat validator dengan tag kustom registrasi.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("homepass_id", func(fl validator.FieldLevel) bool {
		return homepassRe.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("phone_id", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) < 10 || len(s) > 13 {
			return false
		}
		return phoneRe.MatchString(s)
	})

	_ = v.RegisterValidation("customer_name", func(fl validator.FieldLevel) bool {
		n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
		return n >= 2 && n <= 100
	})

	return v
}

// FieldError satu isu validasi per field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// nama field JSON per field struct RegisterInput
var fieldNames = map[string]string{
	"HomepassID":   "homepassId",
	"CustomerName": "customerName",
	"PhoneNumber":  "phoneNumber",
	"Lat":          "location.lat",
	"Lng":          "location.lng",
	"Address":      "location.address",
}

var fieldMessages = map[string]string{
	"homepassId":       "Format Homepass ID tidak valid",
	"customerName":     "Nama pelanggan harus 2-100 karakter",
	"phoneNumber":      "Nomor telepon harus 10-13 digit dan diawali angka 0",
	"location.lat":     "Koordinat lokasi tidak valid",
	"location.lng":     "Koordinat lokasi tidak valid",
	"location.address": "Alamat wajib diisi",
}

// ValidationDetails membentuk daftar isu per field dari error validator.
// Semua field dilaporkan, tidak berhenti di isu pertama.
func ValidationDetails(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "input", Message: "Input tidak valid"}}
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		field, ok := fieldNames[fe.StructField()]
		if !ok {
			field = fe.StructField()
		}
		msg, ok := fieldMessages[field]
		if !ok {
			msg = field + " tidak valid"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
