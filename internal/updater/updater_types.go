package updater

import (
	"errors"
	"io"
	"time"
)

const (
	DefaultRepoURL = "http://repo.logdna.com"

	EnvRepoURL     = "LOGDNA_REPO_URL"
	EnvInstallPath = "LOGDNA_INSTALL_PATH"

	// DefaultInterval is how long a successful check is trusted.
	DefaultInterval = 24 * time.Hour
	// InvalidRetryAfter is when a check that returned garbage is retried.
	InvalidRetryAfter = 24 * time.Hour

	checkTimeout       = 2500 * time.Millisecond
	forcedCheckTimeout = 30 * time.Second

	artifactName = "logdna.gz"
	versionName  = "version"
)

var (
	ErrUpdateCheck      = errors.New("updater: update check failed")
	ErrUpdateInProgress = errors.New("updater: another update is in progress")
	ErrEmptyArtifact    = errors.New("updater: downloaded artifact is empty")
)

// StateStore persists the time of the last check, epoch millis.
type StateStore interface {
	LastUpdateCheck() int64
	SaveUpdateCheck(ms int64) error
}

// Options configures a Manager. Zero values pick defaults.
type Options struct {
	// RepoURL hosts <platform>/version and <platform>/logdna.gz.
	RepoURL string
	// InstallPath is the binary that gets replaced; the running executable
	// by default.
	InstallPath string
	// LockPath guards against concurrent upgrades.
	LockPath       string
	CurrentVersion string
	Interval       time.Duration
	Platform       string
	Out            io.Writer
	Now            func() time.Time
}
