package config

import (
	"encoding/base64"
	"os"

	"github.com/joho/godotenv"
)

// parseEnv populates Config fields from environment variables, loading an
// optional .env file first. Unset variables leave the current value intact.
//
// Recognized variables:
//
//	PORT                                       listen port ("5000" -> ":5000")
//	DATABASE_DRIVER                            "pgx" or "sqlite"
//	DATABASE_DSN                               DSN / file path
//	STORAGE_BACKEND                            "s3" or "local"
//	S3_ACCESS_KEY, S3_SECRET_KEY               object storage credentials
//	S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT     object storage settings
//	LOCAL_STORAGE_DIR                          upload directory (local variant)
//	PUBLIC_BASE_URL                            external base URL (local variant)
//	GOOGLE_APPLICATION_CREDENTIALS_JSON_BASE64 FCM service account, base64 or
//	                                           plain JSON
func parseEnv(config *Config) {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load()

	if port := os.Getenv("PORT"); port != "" {
		config.EndpointAddr = ":" + port
	}

	setEnv(&config.DatabaseDriver, "DATABASE_DRIVER")
	setEnv(&config.DatabaseDSN, "DATABASE_DSN")
	setEnv(&config.StorageBackend, "STORAGE_BACKEND")
	setEnv(&config.S3AccessKey, "S3_ACCESS_KEY")
	setEnv(&config.S3SecretKey, "S3_SECRET_KEY")
	setEnv(&config.S3Bucket, "S3_BUCKET")
	setEnv(&config.S3Region, "S3_REGION")
	setEnv(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setEnv(&config.LocalStorageDir, "LOCAL_STORAGE_DIR")
	setEnv(&config.PublicBaseURL, "PUBLIC_BASE_URL")

	if blob := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON_BASE64"); blob != "" {
		config.FirebaseCredentialsJSON = decodeCredentialBlob(blob)
	}
}

func setEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// decodeCredentialBlob accepts either a base64-encoded or a plain JSON
// service-account blob and returns the JSON text.
func decodeCredentialBlob(blob string) string {
	if decoded, err := base64.StdEncoding.DecodeString(blob); err == nil {
		return string(decoded)
	}
	return blob
}
