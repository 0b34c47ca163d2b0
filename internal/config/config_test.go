package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertEnvs(t *testing.T) {
	tests := []struct {
		name    string
		specs   []EnvSpec
		env     map[string]string
		wantErr string
	}{
		{
			name:  "present string passes",
			specs: []EnvSpec{{Var: "TEST_TOKEN", Label: "The Bot Token", Kind: String}},
			env:   map[string]string{"TEST_TOKEN": "abc123"},
		},
		{
			name:    "missing variable fails",
			specs:   []EnvSpec{{Var: "TEST_TOKEN", Label: "The Bot Token", Kind: String}},
			wantErr: "TEST_TOKEN/The Bot Token needs to be defined",
		},
		{
			name:    "empty variable counts as missing",
			specs:   []EnvSpec{{Var: "TEST_TOKEN", Label: "The Bot Token", Kind: String}},
			env:     map[string]string{"TEST_TOKEN": ""},
			wantErr: "TEST_TOKEN/The Bot Token needs to be defined",
		},
		{
			name:    "non-numeric int fails with type message",
			specs:   []EnvSpec{{Var: "TEST_PORT", Label: "The Port", Kind: Int}},
			env:     map[string]string{"TEST_PORT": "not-a-number"},
			wantErr: "TEST_PORT/The Port is not the required type of int",
		},
		{
			name:  "numeric int passes",
			specs: []EnvSpec{{Var: "TEST_PORT", Label: "The Port", Kind: Int}},
			env:   map[string]string{"TEST_PORT": "8080"},
		},
		{
			name:    "non-bool fails with type message",
			specs:   []EnvSpec{{Var: "TEST_FLAG", Label: "The Flag", Kind: Bool}},
			env:     map[string]string{"TEST_FLAG": "maybe"},
			wantErr: "TEST_FLAG/The Flag is not the required type of bool",
		},
		{
			name:  "bool passes",
			specs: []EnvSpec{{Var: "TEST_FLAG", Label: "The Flag", Kind: Bool}},
			env:   map[string]string{"TEST_FLAG": "true"},
		},
		{
			name: "first failing entry wins",
			specs: []EnvSpec{
				{Var: "TEST_A", Label: "A", Kind: String},
				{Var: "TEST_B", Label: "B", Kind: String},
			},
			env:     map[string]string{"TEST_B": "set"},
			wantErr: "TEST_A/A needs to be defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := AssertEnvs(tt.specs)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var missing *MissingConfigurationError
			require.True(t, errors.As(err, &missing), "error must be a MissingConfigurationError")
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_MissingToken_Fails(t *testing.T) {
	t.Setenv("TOKEN", "")

	_, err := Load("")

	require.Error(t, err)
	var missing *MissingConfigurationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "TOKEN", missing.Var)
	assert.Equal(t, "The Bot Token", missing.Label)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN", "test-token")
	t.Setenv("OWNER_ID", "")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.Token)
	assert.Equal(t, DefaultCommandPrefix, cfg.CommandPrefix)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFile, cfg.Logging.File)
	assert.Equal(t, DefaultLogMaxSize, cfg.Logging.MaxSize)
	assert.Equal(t, DefaultLogMaxBackups, cfg.Logging.MaxBackups)
	assert.Equal(t, DefaultLogMaxAge, cfg.Logging.MaxAge)
	require.NotNil(t, cfg.Logging.Compress)
	assert.True(t, *cfg.Logging.Compress)
	require.NotNil(t, cfg.Logging.EnableStdout)
	assert.True(t, *cfg.Logging.EnableStdout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOKEN", "test-token")
	t.Setenv("OWNER_ID", "owner-42")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "custom.log")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "owner-42", cfg.OwnerID)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "custom.log", cfg.Logging.File)
}

func TestLoad_SettingsFile(t *testing.T) {
	t.Setenv("TOKEN", "test-token")
	t.Setenv("OWNER_ID", "")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")

	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := `
command_prefix: "$"
owner_id: "owner-from-file"
logging:
  level: warn
  file: file.log
  max_size: 10
  max_backups: 2
  max_age: 7
  compress: false
  enable_stdout: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "$", cfg.CommandPrefix)
	assert.Equal(t, "owner-from-file", cfg.OwnerID)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "file.log", cfg.Logging.File)
	assert.Equal(t, 10, cfg.Logging.MaxSize)
	assert.Equal(t, 2, cfg.Logging.MaxBackups)
	assert.Equal(t, 7, cfg.Logging.MaxAge)
	require.NotNil(t, cfg.Logging.Compress)
	assert.False(t, *cfg.Logging.Compress)
	require.NotNil(t, cfg.Logging.EnableStdout)
	assert.False(t, *cfg.Logging.EnableStdout)
}

func TestLoad_SettingsFile_EnvStillWins(t *testing.T) {
	t.Setenv("TOKEN", "test-token")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_SettingsFile_Absent_IsIgnored(t *testing.T) {
	t.Setenv("TOKEN", "test-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

func TestLoad_SettingsFile_Malformed_Fails(t *testing.T) {
	t.Setenv("TOKEN", "test-token")

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [not a mapping"), 0644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestExpandEnv(t *testing.T) {
	t.Run("expands set variables", func(t *testing.T) {
		t.Setenv("TEST_EXPAND_VALUE", "secret")

		out, err := expandEnv("token: ${TEST_EXPAND_VALUE}")

		require.NoError(t, err)
		assert.Equal(t, "token: secret", out)
	})

	t.Run("missing variable is an error", func(t *testing.T) {
		_, err := expandEnv("token: ${TEST_EXPAND_UNSET_VALUE}")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_EXPAND_UNSET_VALUE")
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "str", String.String())
	assert.Equal(t, "int", Int.String())
	assert.Equal(t, "bool", Bool.String())
}
