// file: internals/features/registration/controller/registration_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	"github.com/wardix/nusafiber-reg-be/internals/constants"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/dto"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/service"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/storage"
	helper "github.com/wardix/nusafiber-reg-be/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type RegistrationController struct {
	Store    storage.RegistrationStore
	Uploads  *service.UploadService
	Validate *validator.Validate
}

func NewRegistrationController(st storage.RegistrationStore, up *service.UploadService, v *validator.Validate) *RegistrationController {
	if v == nil {
		v = dto.NewValidator()
	}
	return &RegistrationController{Store: st, Uploads: up, Validate: v}
}

// ambil context standar (kalau Fiber mendukung UserContext)
func reqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

/* ============================ CREATE ============================ */
// Create menangani POST /api/register: pipeline linear satu lintasan,
// berhenti di kegagalan pertama.
func (ctl *RegistrationController) Create(c *fiber.Ctx) error {
	// 1) Field & file wajib dari multipart form
	homepassID := strings.TrimSpace(c.FormValue("homepassId"))
	customerName := strings.TrimSpace(c.FormValue("customerName"))
	phoneNumber := strings.TrimSpace(c.FormValue("phoneNumber"))
	locationRaw := strings.TrimSpace(c.FormValue("location"))

	ktpFile, ktpErr := c.FormFile("ktpFile")

	needHousePhoto := ctl.Store.Driver() == configs.DriverPostgres
	houseFile, houseErr := c.FormFile("housePhotoFile")

	if homepassID == "" || customerName == "" || phoneNumber == "" || locationRaw == "" ||
		ktpErr != nil || (needHousePhoto && houseErr != nil) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing required fields")
	}

	// 2) Field location adalah string JSON
	var loc dto.LocationInput
	if err := sonic.Unmarshal([]byte(locationRaw), &loc); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid location format")
	}

	// 3) Validasi seluruh field sekaligus (tanpa short-circuit antar field)
	input := dto.RegisterInput{
		HomepassID:   homepassID,
		CustomerName: customerName,
		PhoneNumber:  phoneNumber,
		Location:     loc,
	}
	if err := ctl.Validate.Struct(input); err != nil {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest,
			"Validation failed", dto.ValidationDetails(err))
	}

	// 4) Cek duplikat (driver file tidak punya; dilewati)
	exists, err := ctl.Store.Exists(reqCtx(c), homepassID)
	if err != nil && !errors.Is(err, storage.ErrUnsupported) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if exists {
		return helper.JsonError(c, fiber.StatusConflict, "Duplicate registration")
	}

	// 5) Validasi tiap file upload secara independen
	if err := service.ValidateUpload(ktpFile, "ktpFile", constants.AllowedKTPMimes, constants.MaxUploadBytes); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if needHousePhoto {
		if err := service.ValidateUpload(houseFile, "housePhotoFile", constants.AllowedHousePhotoMimes, constants.MaxUploadBytes); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	// 6) Simpan file. Kalau file kedua gagal, file pertama tidak di-rollback
	// (orphan diterima, tanpa cleanup kompensasi).
	ktpName, err := ctl.Uploads.Save(ktpFile, "ktp")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save files")
	}
	var houseName string
	if needHousePhoto {
		houseName, err = ctl.Uploads.Save(houseFile, "house")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save files")
		}
	}

	// 7) Persist record
	rec := dto.RegistrationRecord{
		HomepassID:   homepassID,
		CustomerName: customerName,
		PhoneNumber:  phoneNumber,
		Location: dto.Location{
			Lat:     *loc.Lat,
			Lng:     *loc.Lng,
			Address: strings.TrimSpace(loc.Address),
		},
		KTPFileName: &ktpName,
		SubmittedAt: time.Now(),
	}
	if houseName != "" {
		rec.HousePhotoFileName = &houseName
	}
	if err := ctl.Store.Insert(reqCtx(c), &rec); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return helper.JsonError(c, fiber.StatusConflict, "Duplicate registration")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save registration data")
	}

	// 8) Echo + referenceId dekoratif (tidak disimpan)
	return helper.JsonOK(c, "Registrasi berhasil diterima", dto.RegisterResponse{
		HomepassID:         rec.HomepassID,
		CustomerName:       rec.CustomerName,
		SubmittedAt:        rec.SubmittedAt,
		ReferenceID:        fmt.Sprintf("NSF-%d", time.Now().UnixMilli()),
		KTPFileName:        ktpName,
		HousePhotoFileName: houseName,
	})
}
