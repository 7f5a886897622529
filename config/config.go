package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// MinJWTSecretLen is the shortest HS256 secret accepted with GIN_MODE=release.
const MinJWTSecretLen = 32

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	StorageGCS = "gcs"
	StorageR2  = "r2"
)

type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string

	StoreDriver  string
	MongoURI     string
	DatabaseName string
	DBTimeout    time.Duration

	JWTSecret     string
	BcryptCost    int
	AdminUsername string
	AdminPassword string

	LogLevel string
	LogMode  string
	LogFile  string

	Storage StorageConfig
}

type StorageConfig struct {
	Driver          string
	MaxUploadSizeMB int

	GCSBucket       string
	CredentialsFile string

	R2Bucket       string
	R2AccessKeyID  string
	R2SecretKey    string
	R2Endpoint     string
	R2PublicDomain string
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := cast.ToIntE(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// getenvDuration accepts Go duration strings ("15s") or plain seconds.
func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if secs, err := cast.ToIntE(v); err == nil {
		if secs <= 0 {
			return def
		}
		return time.Duration(secs) * time.Second
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		GinMode:        getenv("GIN_MODE", "release"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		StoreDriver:  strings.ToLower(getenv("STORE_DRIVER", StoreMongo)),
		MongoURI:     os.Getenv("MONGODB_URI"),
		DatabaseName: getenv("DATABASE_NAME", "catalog"),
		DBTimeout:    getenvDuration("DB_TIMEOUT", 10*time.Second),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		BcryptCost:    getenvInt("BCRYPT_COST", 10),
		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogMode:  strings.ToLower(getenv("LOG_MODE", "production")),
		LogFile:  os.Getenv("LOG_FILE"),

		Storage: StorageConfig{
			Driver:          strings.ToLower(os.Getenv("STORAGE_DRIVER")),
			MaxUploadSizeMB: getenvInt("MAX_UPLOAD_SIZE_MB", 5),
			GCSBucket:       os.Getenv("GCS_BUCKET"),
			CredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
			R2Bucket:        os.Getenv("R2_BUCKET"),
			R2AccessKeyID:   os.Getenv("R2_ACCESS_KEY_ID"),
			R2SecretKey:     os.Getenv("R2_SECRET_ACCESS_KEY"),
			R2Endpoint:      os.Getenv("R2_ENDPOINT"),
			R2PublicDomain:  strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
		},
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("missing JWT_SECRET env var"))
	case c.GinMode == "release" && len(c.JWTSecret) < MinJWTSecretLen:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes in release mode", MinJWTSecretLen))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, errors.New("GIN_MODE must be debug, release or test"))
	}
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("missing MONGODB_URI env var"))
		}
	case StoreMemory:
	default:
		errs = append(errs, errors.New("STORE_DRIVER must be mongo or memory"))
	}
	switch c.Storage.Driver {
	case "":
	case StorageGCS:
		if c.Storage.GCSBucket == "" {
			errs = append(errs, errors.New("missing GCS_BUCKET env var"))
		}
	case StorageR2:
		s := c.Storage
		if s.R2Bucket == "" || s.R2AccessKeyID == "" || s.R2SecretKey == "" || s.R2Endpoint == "" {
			errs = append(errs, errors.New("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)"))
		}
	default:
		errs = append(errs, errors.New("STORAGE_DRIVER must be gcs, r2 or empty"))
	}
	return errors.Join(errs...)
}
