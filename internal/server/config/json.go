package config

import (
	"encoding/json"
	"os"

	"github.com/smart-mailbox/backend/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, non-empty fields are copied
// into the runtime Config.
type JsonConfig struct {
	EndpointAddr            string `json:"endpoint_addr"`
	DatabaseDriver          string `json:"database_driver"`
	DatabaseDSN             string `json:"database_dsn"`
	StorageBackend          string `json:"storage_backend"`
	S3AccessKey             string `json:"s3_access_key"`
	S3SecretKey             string `json:"s3_secret_key"`
	S3Bucket                string `json:"s3_bucket"`
	S3Region                string `json:"s3_region"`
	S3BaseEndpoint          string `json:"s3_base_endpoint"`
	LocalStorageDir         string `json:"local_storage_dir"`
	PublicBaseURL           string `json:"public_base_url"`
	FirebaseCredentialsJSON string `json:"firebase_credentials_json"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags.
// If it is not set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setJson(&config.EndpointAddr, c.EndpointAddr)
	setJson(&config.DatabaseDriver, c.DatabaseDriver)
	setJson(&config.DatabaseDSN, c.DatabaseDSN)
	setJson(&config.StorageBackend, c.StorageBackend)
	setJson(&config.S3AccessKey, c.S3AccessKey)
	setJson(&config.S3SecretKey, c.S3SecretKey)
	setJson(&config.S3Bucket, c.S3Bucket)
	setJson(&config.S3Region, c.S3Region)
	setJson(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setJson(&config.LocalStorageDir, c.LocalStorageDir)
	setJson(&config.PublicBaseURL, c.PublicBaseURL)
	setJson(&config.FirebaseCredentialsJSON, c.FirebaseCredentialsJSON)
}

func setJson(target *string, value string) {
	if value != "" {
		*target = value
	}
}
