package config

// MinIOConfig holds object storage settings for publishing artifacts.
// An empty Endpoint means artifacts go to Paths.ArtifactsDir instead.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"pl-spend"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Region    string `env:"MINIO_REGION" envDefault:"us-east-1"`
}

// Enabled reports whether MinIO publishing is configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}
