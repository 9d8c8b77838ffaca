package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardix/nusafiber-reg-be/internals/configs"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/dto"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/service"
	"github.com/wardix/nusafiber-reg-be/internals/features/registration/storage"
)

var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, []byte("JFIF\x00")...)
	pdfBytes  = []byte("%PDF-1.4\n%fake\n")
)

/* ===================== fake store (jalur postgres) ===================== */

type fakeStore struct {
	records   map[string]dto.RegistrationRecord
	inserted  []dto.RegistrationRecord
	insertErr error
	pingErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]dto.RegistrationRecord{}}
}

func (f *fakeStore) Driver() string { return configs.DriverPostgres }

func (f *fakeStore) Exists(ctx context.Context, homepassID string) (bool, error) {
	_, ok := f.records[homepassID]
	return ok, nil
}

func (f *fakeStore) Insert(ctx context.Context, rec *dto.RegistrationRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *rec)
	f.records[rec.HomepassID] = *rec
	return nil
}

func (f *fakeStore) List(ctx context.Context, limit, offset int) ([]dto.RegistrationRecord, int64, error) {
	total := int64(len(f.inserted))
	if offset >= len(f.inserted) {
		return []dto.RegistrationRecord{}, total, nil
	}
	end := offset + limit
	if end > len(f.inserted) {
		end = len(f.inserted)
	}
	return f.inserted[offset:end], total, nil
}

func (f *fakeStore) GetByHomepassID(ctx context.Context, homepassID string) (dto.RegistrationRecord, error) {
	rec, ok := f.records[homepassID]
	if !ok {
		return dto.RegistrationRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeStore) Close() error                   { return nil }

/* ===================== harness ===================== */

func newTestApp(t *testing.T, st storage.RegistrationStore) (*fiber.App, string) {
	t.Helper()

	uploadDir := t.TempDir()
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   16 * 1024 * 1024,
	})

	ctl := NewRegistrationController(st, service.NewUploadService(uploadDir), nil)
	api := app.Group("/api")
	api.Post("/register", ctl.Create)
	api.Get("/registrations", ctl.List)
	api.Get("/registrations/:homepassId", ctl.GetByHomepassID)
	api.Get("/health", NewHealthController(st).Health)

	return app, uploadDir
}

func buildForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"homepassId":   "AB12-CDE34-H00001",
		"customerName": "Siti Aminah",
		"phoneNumber":  "081234567890",
		"location":     `{"lat":-6.2,"lng":106.8,"address":"Jl. Merdeka 1"}`,
	}
}

func postRegister(t *testing.T, app *fiber.App, fields map[string]string, files map[string][]byte) *http.Response {
	t.Helper()

	body, contentType := buildForm(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	_ = resp.Body.Close()
}

type errEnvelope struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Details []dto.FieldError `json:"details"`
}

/* ===================== register: jalur postgres ===================== */

func TestRegisterSuccessPostgresDriver(t *testing.T) {
	st := newFakeStore()
	app, uploadDir := newTestApp(t, st)

	resp := postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        jpegBytes,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                 `json:"success"`
		Message string               `json:"message"`
		Data    dto.RegisterResponse `json:"data"`
	}
	decode(t, resp, &body)

	assert.True(t, body.Success)
	assert.Equal(t, "AB12-CDE34-H00001", body.Data.HomepassID)
	assert.Equal(t, "Siti Aminah", body.Data.CustomerName)
	assert.Regexp(t, `^NSF-\d+$`, body.Data.ReferenceID)
	assert.Regexp(t, `^ktp_\d+\.jpg$`, body.Data.KTPFileName)
	assert.Regexp(t, `^house_\d+\.jpg$`, body.Data.HousePhotoFileName)

	// file tersimpan di upload dir
	_, err := os.Stat(filepath.Join(uploadDir, body.Data.KTPFileName))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(uploadDir, body.Data.HousePhotoFileName))
	require.NoError(t, err)

	// record masuk store dengan nilai identik
	require.Len(t, st.inserted, 1)
	rec := st.inserted[0]
	assert.Equal(t, "081234567890", rec.PhoneNumber)
	assert.Equal(t, dto.Location{Lat: -6.2, Lng: 106.8, Address: "Jl. Merdeka 1"}, rec.Location)
	require.NotNil(t, rec.HousePhotoFileName)
}

func TestRegisterDuplicatePrecheck(t *testing.T) {
	st := newFakeStore()
	app, _ := newTestApp(t, st)

	resp := postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        jpegBytes,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// submit kedua dengan homepassId sama
	resp = postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        jpegBytes,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body errEnvelope
	decode(t, resp, &body)
	assert.False(t, body.Success)
	assert.Equal(t, "Duplicate registration", body.Error)
}

// Balapan check-then-insert: pre-check lolos tapi unique index menolak insert.
func TestRegisterDuplicateAtInsert(t *testing.T) {
	st := newFakeStore()
	st.insertErr = storage.ErrDuplicate
	app, _ := newTestApp(t, st)

	resp := postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        jpegBytes,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body errEnvelope
	decode(t, resp, &body)
	assert.Equal(t, "Duplicate registration", body.Error)
}

func TestRegisterMissingFields(t *testing.T) {
	app, _ := newTestApp(t, newFakeStore())

	// tanpa phoneNumber
	fields := validFields()
	delete(fields, "phoneNumber")
	resp := postRegister(t, app, fields, map[string][]byte{
		"ktpFile":        jpegBytes,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errEnvelope
	decode(t, resp, &body)
	assert.Equal(t, "Missing required fields", body.Error)

	// tanpa housePhotoFile (wajib di driver postgres)
	resp = postRegister(t, app, validFields(), map[string][]byte{"ktpFile": jpegBytes})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "Missing required fields", body.Error)

	// tanpa ktpFile
	resp = postRegister(t, app, validFields(), map[string][]byte{"housePhotoFile": jpegBytes})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "Missing required fields", body.Error)
}

func TestRegisterInvalidLocation(t *testing.T) {
	app, _ := newTestApp(t, newFakeStore())

	for _, loc := range []string{
		"bukan-json",
		`{"lat":"enam","lng":106.8,"address":"Jl. Merdeka 1"}`,
	} {
		fields := validFields()
		fields["location"] = loc
		resp := postRegister(t, app, fields, map[string][]byte{
			"ktpFile":        jpegBytes,
			"housePhotoFile": jpegBytes,
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errEnvelope
		decode(t, resp, &body)
		assert.Equal(t, "Invalid location format", body.Error)
	}
}

func TestRegisterValidationFailed(t *testing.T) {
	app, _ := newTestApp(t, newFakeStore())

	fields := validFields()
	fields["homepassId"] = "SALAH-FORMAT"
	fields["phoneNumber"] = "123"
	resp := postRegister(t, app, fields, map[string][]byte{
		"ktpFile":        jpegBytes,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errEnvelope
	decode(t, resp, &body)
	assert.Equal(t, "Validation failed", body.Error)
	require.Len(t, body.Details, 2)
}

func TestRegisterRejectsWrongFileType(t *testing.T) {
	app, _ := newTestApp(t, newFakeStore())

	// KTP teks polos → ditolak, errornya menyebut ktpFile
	resp := postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        []byte("bukan gambar"),
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errEnvelope
	decode(t, resp, &body)
	assert.Contains(t, body.Error, "ktpFile")

	// PDF boleh untuk KTP tapi tidak untuk foto rumah
	resp = postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        pdfBytes,
		"housePhotoFile": pdfBytes,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Contains(t, body.Error, "housePhotoFile")
}

func TestRegisterRejectsOversizeFile(t *testing.T) {
	app, _ := newTestApp(t, newFakeStore())

	big := append([]byte{}, jpegBytes...)
	big = append(big, make([]byte, 5*1024*1024)...) // total > 5 MiB

	resp := postRegister(t, app, validFields(), map[string][]byte{
		"ktpFile":        big,
		"housePhotoFile": jpegBytes,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errEnvelope
	decode(t, resp, &body)
	assert.Contains(t, body.Error, "ktpFile")
}

/* ===================== register: jalur file ===================== */

func TestRegisterSuccessFileDriver(t *testing.T) {
	st, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	app, _ := newTestApp(t, st)

	// driver file: housePhotoFile tidak dipakai sama sekali
	resp := postRegister(t, app, validFields(), map[string][]byte{"ktpFile": jpegBytes})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                 `json:"success"`
		Data    dto.RegisterResponse `json:"data"`
	}
	decode(t, resp, &body)
	assert.True(t, body.Success)
	assert.Regexp(t, `^NSF-\d+$`, body.Data.ReferenceID)
	assert.Empty(t, body.Data.HousePhotoFileName)

	// round-trip lewat list
	req := httptest.NewRequest(http.MethodGet, "/api/registrations", nil)
	listResp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Success bool                     `json:"success"`
		Data    []dto.RegistrationRecord `json:"data"`
		Count   int                      `json:"count"`
	}
	decode(t, listResp, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "AB12-CDE34-H00001", list.Data[0].HomepassID)
	assert.Equal(t, "Siti Aminah", list.Data[0].CustomerName)
	assert.Equal(t, dto.Location{Lat: -6.2, Lng: 106.8, Address: "Jl. Merdeka 1"}, list.Data[0].Location)
}

/* ===================== list & detail ===================== */

func TestListPaged(t *testing.T) {
	st := newFakeStore()
	app, _ := newTestApp(t, st)

	for i := 0; i < 12; i++ {
		rec := dto.RegistrationRecord{HomepassID: "AB12-CDE34-H000" + string(rune('0'+i/10)) + string(rune('0'+i%10))}
		require.NoError(t, st.Insert(context.Background(), &rec))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/registrations?page=2&limit=10", nil)
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success    bool                     `json:"success"`
		Data       []dto.RegistrationRecord `json:"data"`
		Count      int                      `json:"count"`
		Total      int64                    `json:"total"`
		Page       int                      `json:"page"`
		TotalPages int                      `json:"totalPages"`
	}
	decode(t, resp, &body)

	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Count)
	assert.EqualValues(t, 12, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 2, body.TotalPages)
}

func TestGetByHomepassID(t *testing.T) {
	st := newFakeStore()
	app, _ := newTestApp(t, st)

	rec := dto.RegistrationRecord{HomepassID: "AB12-CDE34-H00001", CustomerName: "Siti Aminah"}
	require.NoError(t, st.Insert(context.Background(), &rec))

	req := httptest.NewRequest(http.MethodGet, "/api/registrations/AB12-CDE34-H00001", nil)
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.RegistrationRecord `json:"data"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "Siti Aminah", body.Data.CustomerName)

	// id tak dikenal → 404
	req = httptest.NewRequest(http.MethodGet, "/api/registrations/UNKNOWN-ID", nil)
	resp, err = app.Test(req, 10_000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

/* ===================== health ===================== */

func TestHealthPostgresDriver(t *testing.T) {
	st := newFakeStore()
	app, _ := newTestApp(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "connected", body["database"])

	// probe gagal → 503
	st.pingErr = context.DeadlineExceeded
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err = app.Test(req, 10_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "DOWN", body["status"])
	assert.Equal(t, "disconnected", body["database"])
}

func TestHealthFileDriverAlwaysHealthy(t *testing.T) {
	st, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	app, _ := newTestApp(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := app.Test(req, 10_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "OK", body["status"])
	_, hasDB := body["database"]
	assert.False(t, hasDB)
}
