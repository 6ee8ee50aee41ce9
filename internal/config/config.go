package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/logdna/logdna-cli/internal/logdnasdk"
	"github.com/logdna/logdna-cli/internal/utils"
	"github.com/spf13/viper"
)

const (
	EnvConfigPath = "LOGDNA_CONFIG_PATH"
	EnvAPIHost    = "LDAPIHOST"
	EnvUseSSL     = "USESSL"

	keyEmail       = "email"
	keyAccount     = "account"
	keyIngestKey   = "key"
	keyToken       = "token"
	keyUpdateCheck = "updatecheck"

	// key=value lines, same shape as a dotenv file
	fileFormat = "env"
	filePerm   = 0o600
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigPath = filepath.Join(home, ".logdna.conf")
	DefaultStateDir   = filepath.Join(home, ".logdna")
	DefaultLogFile    = filepath.Join(DefaultStateDir, "logs", "logdna.log")
	DefaultLockPath   = filepath.Join(DefaultStateDir, "update.lock")
)

var (
	ErrInvalidEmail = errors.New("config: invalid email")
	ErrInvalidPath  = errors.New("config: invalid path")
)

// Config is the persisted account state plus the environment the CLI talks
// to. It is loaded once per invocation and handed to commands explicitly.
type Config struct {
	Email       string
	Account     string
	Key         string // ingestion key
	Token       string
	UpdateCheck int64 // epoch millis of the last update check

	// not persisted
	APIHost string
	UseSSL  bool
	Path    string
}

// Load reads the config file at path. A missing file is an empty config.
// Environment overrides are applied on top.
func Load(path string) (*Config, error) {
	resolved, err := utils.ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	v := viper.New()
	v.SetConfigFile(resolved)
	v.SetConfigType(fileFormat)

	if utils.FileExists(resolved) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config read '%s': %w", resolved, err)
		}
	}

	v.SetDefault("apihost", logdnasdk.DefaultAPIHost)
	_ = v.BindEnv("apihost", EnvAPIHost)
	_ = v.BindEnv("usessl", EnvUseSSL)

	cfg := &Config{
		Email:       v.GetString(keyEmail),
		Account:     v.GetString(keyAccount),
		Key:         v.GetString(keyIngestKey),
		Token:       v.GetString(keyToken),
		UpdateCheck: v.GetInt64(keyUpdateCheck),
		APIHost:     v.GetString("apihost"),
		UseSSL:      parseUseSSL(v.GetString("usessl")),
		Path:        resolved,
	}

	slog.Debug("config loaded", "path", resolved, "email", cfg.Email, "account", cfg.Account, "token", utils.MaskSecret(cfg.Token))
	return cfg, nil
}

// parseUseSSL: anything that isn't a number keeps TLS on, a number is
// truthy when non-zero.
func parseUseSSL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return true
	}
	return n != 0
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrInvalidPath
	}

	if c.Email != "" {
		if err := utils.ValidateEmail(c.Email); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
		}
	}

	return nil
}

// Save writes the persisted keys to Path, replacing the file atomically.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := utils.EnsureParent(c.Path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(fileFormat)
	v.Set(keyEmail, c.Email)
	v.Set(keyAccount, c.Account)
	v.Set(keyIngestKey, c.Key)
	v.Set(keyToken, c.Token)
	v.Set(keyUpdateCheck, c.UpdateCheck)

	if err := utils.WriteFileAtomic(c.Path, filePerm, v.WriteConfigTo); err != nil {
		return fmt.Errorf("config write '%s': %w", c.Path, err)
	}

	return nil
}

// Identity is what authenticated calls are signed with.
func (c *Config) Identity() logdnasdk.Identity {
	return logdnasdk.Identity{
		Email:        c.Email,
		AccountID:    c.Account,
		Token:        c.Token,
		IngestionKey: c.Key,
	}
}

// APIURL is the REST/websocket base derived from LDAPIHOST and USESSL.
func (c *Config) APIURL() string {
	return logdnasdk.APIURL(c.APIHost, c.UseSSL)
}

// ApplyRegistration records a new sign-up. A different account invalidates
// the stored token unless the response carries a new one.
func (c *Config) ApplyRegistration(email string, resp *logdnasdk.RegisterResponse) {
	c.Email = email
	if c.Account != resp.Account {
		c.Account = resp.Account
		c.Token = ""
	}
	c.Key = resp.Key
	if resp.Token != "" {
		c.Token = resp.Token
	}
}

// ApplyLogin records a successful login. Switching to a different first
// account drops the old ingestion key unless a new one came back.
func (c *Config) ApplyLogin(email string, resp *logdnasdk.LoginResponse) {
	c.Email = email
	if len(resp.Accounts) > 0 && c.Account != resp.Accounts[0] {
		c.Account = resp.Accounts[0]
		c.Key = ""
	}
	if len(resp.Keys) > 0 {
		c.Key = resp.Keys[0]
	}
	c.Token = resp.Token
}

// LastUpdateCheck and SaveUpdateCheck let the updater persist its state in
// the same file.
func (c *Config) LastUpdateCheck() int64 {
	return c.UpdateCheck
}

func (c *Config) SaveUpdateCheck(ms int64) error {
	c.UpdateCheck = ms
	return c.Save()
}
