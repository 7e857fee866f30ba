package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		CallerID:    "caller-abc",
		BaseDir:     "/home/user/.local/share/pv",
		LogDir:      "/home/user/.local/share/pv/log",
		DownloadDir: "/home/user/Downloads",
		Registry:    RegistryConfig{Type: "sqlite", DataDir: "/home/user/.local/share/pv/db"},
		Blob: BlobConfig{
			Type:     "s3",
			S3Bucket: "my-photos",
			S3Prefix: "vault",
			S3Region: "eu-west-1",
			Encrypt:  true,
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/pv/keys/pv.pub",
			PrivateKeyPath: "/home/user/.local/share/pv/keys/pv.key",
		},
		Cache: CacheConfig{MaxEntries: 8, TTLSeconds: 30},
		Batch: BatchConfig{DownloadDelayMillis: 150},
	}

	var buf bytes.Buffer
	m := &Manager{}
	require.NoError(t, m.Write(&buf, original))

	got, err := m.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, original, got)
}

func TestManager_Read_AppliesDefaults(t *testing.T) {
	raw := `
caller_id = "caller-1"
base_dir = "/data/pv"

[registry]
type = "memory"

[blob]
type = "memory"
encrypt = false
`
	m := &Manager{}
	cfg, err := m.Read(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Cache.MaxEntries)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, 0, cfg.Batch.DownloadDelayMillis)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("caller-1", "/data/pv")

	assert.Equal(t, "caller-1", cfg.CallerID)
	assert.Equal(t, "/data/pv", cfg.BaseDir)
	assert.Equal(t, "/data/pv/log", cfg.LogDir)
	assert.Equal(t, "/data/pv/downloads", cfg.DownloadDir)
	assert.Equal(t, "sqlite", cfg.Registry.Type)
	assert.Equal(t, "/data/pv/db", cfg.Registry.DataDir)
	assert.Equal(t, "filesystem", cfg.Blob.Type)
	assert.Equal(t, "/data/pv/blobs", cfg.Blob.FSRoot)
	assert.Equal(t, "/data/pv/keys/pv.pub", cfg.Encryption.PublicKeyPath)
	assert.Equal(t, "/data/pv/keys/pv.key", cfg.Encryption.PrivateKeyPath)
	assert.Equal(t, 16, cfg.Cache.MaxEntries)
	assert.Equal(t, 300, cfg.Batch.DownloadDelayMillis)
}

func TestReadFromFile_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pv.toml")
	cfg := NewConfig("from-file", dir)
	require.NoError(t, Init(path, cfg))

	t.Setenv("PV_CALLER_ID", "from-env")
	t.Setenv("PV_BLOB_TYPE", "s3")
	t.Setenv("PV_S3_BUCKET", "env-bucket")
	t.Setenv("PV_DOWNLOAD_DELAY_MS", "50")

	got, err := ReadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", got.CallerID, "env should override the file value")
	assert.Equal(t, "s3", got.Blob.Type)
	assert.Equal(t, "env-bucket", got.Blob.S3Bucket)
	assert.Equal(t, 50, got.Batch.DownloadDelayMillis)
	assert.Equal(t, dir, got.BaseDir, "unset env vars leave file values alone")
}

func TestReadFromFile_MissingFile(t *testing.T) {
	_, err := ReadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pv.toml")
		cfg := NewConfig("c1", dir)

		require.NoError(t, Init(path, cfg))

		_, err := os.Stat(path)
		require.NoError(t, err, "config file not created")
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pv.toml")
		cfg := NewConfig("c1", dir)

		require.NoError(t, Init(path, cfg))
		assert.Error(t, Init(path, cfg), "second Init should refuse to overwrite")
	})

	t.Run("creates intermediate directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deeper", "pv.toml")
		cfg := NewConfig("c1", dir)

		require.NoError(t, Init(path, cfg))

		_, err := os.Stat(path)
		require.NoError(t, err)
	})
}
