package constants

// Batas ukuran per file upload (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

// MIME yang diterima per jenis dokumen. KTP boleh PDF, foto rumah tidak.
var (
	AllowedKTPMimes = []string{"image/jpeg", "image/png", "application/pdf"}

	AllowedHousePhotoMimes = []string{"image/jpeg", "image/png"}
)
