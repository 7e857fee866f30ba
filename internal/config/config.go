package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config is the main configuration for pv.
type Config struct {
	// CallerID is the stable identity all registry operations are scoped
	// to. The identity provider that issues it is external; pv only needs
	// the opaque key.
	CallerID    string `toml:"caller_id" env:"PV_CALLER_ID"`
	BaseDir     string `toml:"base_dir" env:"PV_BASE_DIR"`
	LogDir      string `toml:"log_dir" env:"PV_LOG_DIR"`
	DownloadDir string `toml:"download_dir" env:"PV_DOWNLOAD_DIR"`

	Registry   RegistryConfig   `toml:"registry"`
	Blob       BlobConfig       `toml:"blob"`
	Encryption EncryptionConfig `toml:"encryption"`
	Cache      CacheConfig      `toml:"cache"`
	Batch      BatchConfig      `toml:"batch"`
}

// RegistryConfig selects the file-registry backend.
// Tagged union: Type determines which other fields are relevant.
type RegistryConfig struct {
	Type    string `toml:"type" env:"PV_REGISTRY_TYPE"` // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"`          // only used for type=sqlite
}

// BlobConfig selects the blob-store backend.
// Tagged union: Type determines which other fields are relevant.
type BlobConfig struct {
	Type string `toml:"type" env:"PV_BLOB_TYPE"` // "memory", "filesystem", or "s3"

	// Filesystem-specific (Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`

	// S3-specific (Type == "s3")
	S3Bucket    string `toml:"s3_bucket,omitempty" env:"PV_S3_BUCKET"`
	S3Prefix    string `toml:"s3_prefix,omitempty" env:"PV_S3_PREFIX"`
	S3Region    string `toml:"s3_region,omitempty" env:"PV_S3_REGION"`
	S3AccessKey string `toml:"s3_access_key,omitempty" env:"PV_S3_ACCESS_KEY"`
	S3SecretKey string `toml:"s3_secret_key,omitempty" env:"PV_S3_SECRET_KEY"`

	// Encrypt wraps the selected backend with client-side age encryption.
	Encrypt bool `toml:"encrypt" env:"PV_BLOB_ENCRYPT"`
}

// EncryptionConfig holds paths to the age key pair used when blob
// encryption is enabled.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// CacheConfig tunes the caller-keyed listing cache.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"` // callers cached at once; defaults to 16
	TTLSeconds int `toml:"ttl_seconds"` // entry lifetime; defaults to 60
}

// BatchConfig tunes the batch action orchestrator.
type BatchConfig struct {
	// DownloadDelayMillis is the pause between items in a batch download.
	DownloadDelayMillis int `toml:"download_delay_ms" env:"PV_DOWNLOAD_DELAY_MS"`
}

// NewConfig creates a Config with the provided identity and sensible
// defaults rooted under baseDir.
func NewConfig(callerID, baseDir string) *Config {
	return &Config{
		CallerID:    callerID,
		BaseDir:     baseDir,
		LogDir:      filepath.Join(baseDir, "log"),
		DownloadDir: filepath.Join(baseDir, "downloads"),
		Registry:    RegistryConfig{Type: "sqlite", DataDir: filepath.Join(baseDir, "db")},
		Blob:        BlobConfig{Type: "filesystem", FSRoot: filepath.Join(baseDir, "blobs")},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "pv.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "pv.key"),
		},
		Cache: CacheConfig{MaxEntries: 16, TTLSeconds: 60},
		Batch: BatchConfig{DownloadDelayMillis: 300},
	}
}

// Manager reads and writes Config in TOML form.
type Manager struct{}

// Read decodes a Config and applies defaults for omitted tunables.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Write encodes a Config as TOML.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = 16
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 60
	}
	if cfg.Batch.DownloadDelayMillis < 0 {
		cfg.Batch.DownloadDelayMillis = 0
	}
}

// ReadFromFile reads a Config from the given path, then applies any
// environment-variable overrides (see the env struct tags).
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. Fails if one already exists.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
