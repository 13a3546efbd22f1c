package models

import (
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// Client Configuration
//
// Settings come from three layers, lowest precedence first:
//   1. an optional YAML file (${VAR} references are expanded),
//   2. LEADS_* environment variables,
//   3. command-line flags, applied by the cli package.
//
// One base URL serves every front end, so the same binary can target the
// relative-path backend it is deployed beside or an external host.
// ============================================================================

// Session backends for the terminal and CLI front ends
const (
	SessionBackendFile   = "file"
	SessionBackendDuckDB = "duckdb"
)

const (
	defaultAPIBaseURL     = "http://localhost:5000"
	defaultListenAddr     = ":8000"
	defaultRequestTimeout = 30 * time.Second
	defaultLogLevel       = "info"
)

// Config holds the client configuration
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`    // LEADS_API_BASE_URL
	ListenAddr     string        `yaml:"listen_addr"`     // LEADS_LISTEN_ADDR (web front end)
	SessionBackend string        `yaml:"session_backend"` // LEADS_SESSION_BACKEND: file | duckdb
	SessionPath    string        `yaml:"session_path"`    // LEADS_SESSION_PATH
	LogLevel       string        `yaml:"log_level"`       // LEADS_LOG_LEVEL
	RequestTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	RequestTimeoutRaw string `yaml:"request_timeout"` // LEADS_REQUEST_TIMEOUT
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     defaultAPIBaseURL,
		ListenAddr:     defaultListenAddr,
		SessionBackend: SessionBackendFile,
		SessionPath:    defaultSessionPath(SessionBackendFile),
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
	}
}

// LoadConfig builds a Config from defaults, the optional YAML file at path
// (skipped when path is empty) and the environment, then validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicitSessionPath := false

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, serr.Wrap(err, "failed to read config file "+path)
		}

		fileCfg := Config{}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &fileCfg); err != nil {
			return nil, serr.Wrap(err, "failed to parse config file "+path)
		}
		if fileCfg.SessionPath != "" {
			explicitSessionPath = true
		}
		cfg.merge(fileCfg)
	}

	if v := os.Getenv("LEADS_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("LEADS_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("LEADS_SESSION_BACKEND"); v != "" {
		cfg.SessionBackend = v
	}
	if v := os.Getenv("LEADS_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
		explicitSessionPath = true
	}
	if v := os.Getenv("LEADS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LEADS_REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeoutRaw = v
	}

	if cfg.RequestTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.RequestTimeoutRaw)
		if err != nil {
			return nil, serr.Wrap(err, "invalid request timeout, expected duration like '30s'")
		}
		cfg.RequestTimeout = d
	}

	// The default path follows the backend so a duckdb store does not try to
	// open the msgpack file
	if !explicitSessionPath {
		cfg.SessionPath = defaultSessionPath(cfg.SessionBackend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration before any front end starts
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return serr.New("api base url is required (LEADS_API_BASE_URL)")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return serr.New("api base url must start with http:// or https://")
	}
	switch c.SessionBackend {
	case SessionBackendFile, SessionBackendDuckDB:
	default:
		return serr.New("session backend must be 'file' or 'duckdb', got '" + c.SessionBackend + "'")
	}
	if c.SessionPath == "" {
		return serr.New("session path is required (LEADS_SESSION_PATH)")
	}
	if c.RequestTimeout <= 0 {
		return serr.New("request timeout must be positive")
	}
	return nil
}

// merge copies every non-empty field of other onto c
func (c *Config) merge(other Config) {
	if other.APIBaseURL != "" {
		c.APIBaseURL = other.APIBaseURL
	}
	if other.ListenAddr != "" {
		c.ListenAddr = other.ListenAddr
	}
	if other.SessionBackend != "" {
		c.SessionBackend = other.SessionBackend
	}
	if other.SessionPath != "" {
		c.SessionPath = other.SessionPath
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.RequestTimeoutRaw != "" {
		c.RequestTimeoutRaw = other.RequestTimeoutRaw
	}
}

// defaultSessionPath places the session state under the user's config dir
func defaultSessionPath(backend string) string {
	name := "session.msgpack"
	if backend == SessionBackendDuckDB {
		name = "session.duckdb"
	}

	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "./data/" + name
	}
	return dir + string(os.PathSeparator) + "leadsweb" + string(os.PathSeparator) + name
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
