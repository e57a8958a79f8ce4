package tracker

// Config holds configuration for the tracker REST client.
type Config struct {
	// BaseURL is the tracker instance URL, e.g. https://example.atlassian.net.
	BaseURL string `mapstructure:"base_url" default:""`
	// Username is the account email used for basic auth. Empty means bearer auth.
	Username string `mapstructure:"username" default:""`
	// APIToken is the API token or personal access token.
	APIToken string `mapstructure:"api_token" default:""`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetrySeconds bounds how long reads are retried on transient failures.
	// Writes are never retried.
	MaxRetrySeconds int `mapstructure:"max_retry_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"schema-sync/1.0"`
}
