package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Setenv(EnvAPIHost, "")
	t.Setenv(EnvUseSSL, "")

	path := filepath.Join(t.TempDir(), "logdna.conf")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Empty(t, cfg.Email)
	assert.Empty(t, cfg.Token)
	assert.Zero(t, cfg.UpdateCheck)
	assert.Equal(t, "https://api.logdna.com", cfg.APIURL())
}

func TestLoad_ReadsKeyValueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logdna.conf")
	content := "email=alice@example.com\naccount=acct1\nkey=ingest1\ntoken=tok\nupdatecheck=1700000000000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", cfg.Email)
	assert.Equal(t, "acct1", cfg.Account)
	assert.Equal(t, "ingest1", cfg.Key)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, int64(1700000000000), cfg.UpdateCheck)
}

func TestConfig_SaveAndLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logdna.conf")

	cfg := &Config{
		Email:       "alice@example.com",
		Account:     "acct1",
		Key:         "ingest1",
		Token:       "tok",
		UpdateCheck: 1700000000000,
		APIHost:     "should.not.persist",
		Path:        path,
	}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should.not.persist")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Email, loaded.Email)
	assert.Equal(t, cfg.Account, loaded.Account)
	assert.Equal(t, cfg.Key, loaded.Key)
	assert.Equal(t, cfg.Token, loaded.Token)
	assert.Equal(t, cfg.UpdateCheck, loaded.UpdateCheck)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestConfig_SaveReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logdna.conf")
	require.NoError(t, os.WriteFile(path, []byte("account=old\ntoken=oldtok\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.ApplyLogin("bob@example.com", &logdnasdk.LoginResponse{Accounts: []string{"acct2"}, Token: "tok2"})
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.ToLower(string(data))
	assert.Contains(t, content, "account=acct2")
	assert.NotContains(t, content, "oldtok")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConfig_SaveRejectsInvalidEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logdna.conf")
	cfg := &Config{Email: "not-an-email", Path: path}

	err := cfg.Save()
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.NoFileExists(t, path)
}

func TestConfig_ValidateRequiresPath(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).Validate(), ErrInvalidPath)
}

func TestParseUseSSL(t *testing.T) {
	tests := map[string]bool{
		"":     true,
		"yes":  true,
		"1":    true,
		"2":    true,
		"0":    false,
		" 0 ":  false,
		"0.0":  false,
		"true": true,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseUseSSL(raw), "USESSL=%q", raw)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvAPIHost, "localhost:9000")
	t.Setenv(EnvUseSSL, "0")

	cfg, err := Load(filepath.Join(t.TempDir(), "logdna.conf"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.APIURL())
}

func TestConfig_Identity(t *testing.T) {
	cfg := &Config{Email: "alice@example.com", Account: "acct1", Key: "k", Token: "tok"}
	assert.Equal(t, logdnasdk.Identity{
		Email:        "alice@example.com",
		AccountID:    "acct1",
		Token:        "tok",
		IngestionKey: "k",
	}, cfg.Identity())
}

func TestConfig_ApplyRegistration(t *testing.T) {
	t.Run("new account clears token", func(t *testing.T) {
		cfg := &Config{Account: "old", Token: "oldtok", Key: "oldkey"}
		cfg.ApplyRegistration("alice@example.com", &logdnasdk.RegisterResponse{Account: "new", Key: "newkey"})

		assert.Equal(t, "alice@example.com", cfg.Email)
		assert.Equal(t, "new", cfg.Account)
		assert.Equal(t, "newkey", cfg.Key)
		assert.Empty(t, cfg.Token)
	})

	t.Run("same account keeps token", func(t *testing.T) {
		cfg := &Config{Account: "acct", Token: "tok"}
		cfg.ApplyRegistration("alice@example.com", &logdnasdk.RegisterResponse{Account: "acct", Key: "k"})
		assert.Equal(t, "tok", cfg.Token)
	})

	t.Run("returned token wins", func(t *testing.T) {
		cfg := &Config{Account: "old", Token: "oldtok"}
		cfg.ApplyRegistration("alice@example.com", &logdnasdk.RegisterResponse{Account: "new", Key: "k", Token: "fresh"})
		assert.Equal(t, "fresh", cfg.Token)
	})
}

func TestConfig_ApplyLogin(t *testing.T) {
	t.Run("account switch without keys clears key", func(t *testing.T) {
		cfg := &Config{Account: "old", Key: "oldkey"}
		cfg.ApplyLogin("alice@example.com", &logdnasdk.LoginResponse{Accounts: []string{"new", "other"}, Token: "tok"})

		assert.Equal(t, "new", cfg.Account)
		assert.Empty(t, cfg.Key)
		assert.Equal(t, "tok", cfg.Token)
	})

	t.Run("first key is stored", func(t *testing.T) {
		cfg := &Config{Account: "acct"}
		cfg.ApplyLogin("alice@example.com", &logdnasdk.LoginResponse{Accounts: []string{"acct"}, Keys: []string{"k1", "k2"}, Token: "tok"})
		assert.Equal(t, "k1", cfg.Key)
	})

	t.Run("no accounts keeps current", func(t *testing.T) {
		cfg := &Config{Account: "acct", Key: "k"}
		cfg.ApplyLogin("alice@example.com", &logdnasdk.LoginResponse{Token: "tok"})
		assert.Equal(t, "acct", cfg.Account)
		assert.Equal(t, "k", cfg.Key)
	})
}

func TestConfig_SaveUpdateCheckPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logdna.conf")
	cfg := &Config{Path: path}

	require.NoError(t, cfg.SaveUpdateCheck(42))
	assert.Equal(t, int64(42), cfg.LastUpdateCheck())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), loaded.UpdateCheck)
}
