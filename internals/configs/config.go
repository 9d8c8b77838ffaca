package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Driver penyimpanan yang didukung.
const (
	DriverPostgres = "postgres"
	DriverFile     = "file"
)

// Config menampung seluruh konfigurasi runtime dari ENV.
type Config struct {
	Port          string
	StorageDriver string

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	UploadDir string
	DataDir   string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	} else {
		log.Println("✅ .env file berhasil dimuat!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// Load membaca ENV menjadi Config. Panggil setelah LoadEnv().
func Load() Config {
	cfg := Config{
		Port:          GetEnv("PORT", "3000"),
		StorageDriver: GetEnv("STORAGE_DRIVER", DriverPostgres),

		DBHost:    GetEnv("DB_HOST", "localhost"),
		DBPort:    GetEnv("DB_PORT", "5432"),
		DBUser:    GetEnv("DB_USER"),
		DBPass:    GetEnv("DB_PASS"),
		DBName:    GetEnv("DB_NAME"),
		DBSSLMode: GetEnv("DB_SSLMODE", "disable"),

		UploadDir: GetEnv("UPLOAD_DIR", "uploads"),
		DataDir:   GetEnv("DATA_DIR", "data"),
	}

	switch cfg.StorageDriver {
	case DriverPostgres, DriverFile:
	default:
		log.Printf("⚠️ STORAGE_DRIVER %q tidak dikenal, fallback ke %s", cfg.StorageDriver, DriverPostgres)
		cfg.StorageDriver = DriverPostgres
	}

	return cfg
}
