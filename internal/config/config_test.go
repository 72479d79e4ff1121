package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cfg := &Config{
		App:  AppConfig{Environment: "development"},
		Data: DataConfig{BasePath: "/tmp/blossom", Backend: BackendBadger},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Data.Backend = "mongodb"
	assert.Error(t, cfg.Validate())

	cfg.Data.Backend = BackendSQLite
	cfg.App.Environment = "staging"
	assert.Error(t, cfg.Validate())

	cfg.App.Environment = "production"
	cfg.Data.BasePath = ""
	assert.Error(t, cfg.Validate())
}

func TestPick(t *testing.T) {
	t.Setenv("BLOSSOM_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", pick("from-flag", "BLOSSOM_TEST_KEY", "def"))
	assert.Equal(t, "from-env", pick("", "BLOSSOM_TEST_KEY", "def"))
	assert.Equal(t, "def", pick("", "BLOSSOM_TEST_MISSING", "def"))
}

func TestPickBool(t *testing.T) {
	assert.True(t, pickBool("true", "", false))
	assert.False(t, pickBool("no", "", true))
	assert.True(t, pickBool("", "BLOSSOM_TEST_MISSING_BOOL", true))
	assert.True(t, pickBool("garbage", "", true))
}

func TestPickDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, pickDuration("5s", "", time.Minute))
	assert.Equal(t, time.Minute, pickDuration("", "BLOSSOM_TEST_MISSING_DUR", time.Minute))
	assert.Equal(t, time.Minute, pickDuration("nonsense", "", time.Minute))
}

func TestExpandDataPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := &Config{Data: DataConfig{BasePath: "~/blossom-test"}}
	require.NoError(t, cfg.expandDataPath())
	assert.Equal(t, filepath.Join(home, "blossom-test"), cfg.Data.BasePath)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nBLOSSOM_ENVFILE_A=hello\nBLOSSOM_ENVFILE_B=\"quoted\"\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("BLOSSOM_ENVFILE_A", "") // ensure unset
	os.Unsetenv("BLOSSOM_ENVFILE_A")
	os.Unsetenv("BLOSSOM_ENVFILE_B")
	defer func() {
		os.Unsetenv("BLOSSOM_ENVFILE_A")
		os.Unsetenv("BLOSSOM_ENVFILE_B")
	}()

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("BLOSSOM_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("BLOSSOM_ENVFILE_B"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	err := loadEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
