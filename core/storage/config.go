package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Backend selects object storage ("s3") or a local directory ("local").
	Backend string `mapstructure:"backend" default:"s3"`
	// LocalRoot is the directory used by the local backend.
	LocalRoot string `mapstructure:"local_root" default:"./data"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding backups and exports.
	Bucket string `mapstructure:"bucket" default:"schema-sync"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// BackupPrefix is the folder pre-apply snapshots are written under.
	BackupPrefix string `mapstructure:"backup_prefix" default:"backups"`
	// ExportPrefix is the folder exported configurations are saved under.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports"`
}
