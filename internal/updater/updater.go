// Package updater keeps the installed binary current: it decides when to
// check, fetches the published version and swaps the executable in place.
package updater

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/logdna/logdna-cli/internal/version"
	"golang.org/x/mod/semver"
)

type Manager struct {
	repoURL        string
	installPath    string
	lockPath       string
	currentVersion string
	interval       time.Duration
	platform       string
	out            io.Writer
	now            func() time.Time
	http           *req.Client
}

// New returns a Manager. Empty options are filled from the environment and
// the running process.
func New(opts Options) *Manager {
	if opts.RepoURL == "" {
		opts.RepoURL = os.Getenv(EnvRepoURL)
	}
	if opts.RepoURL == "" {
		opts.RepoURL = DefaultRepoURL
	}
	if opts.InstallPath == "" {
		opts.InstallPath = os.Getenv(EnvInstallPath)
	}
	if opts.LockPath == "" {
		opts.LockPath = filepath.Join(os.TempDir(), "logdna-update.lock")
	}
	if opts.CurrentVersion == "" {
		opts.CurrentVersion = version.Version
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Platform == "" {
		opts.Platform = Platform()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Manager{
		repoURL:        strings.TrimSuffix(opts.RepoURL, "/"),
		installPath:    opts.InstallPath,
		lockPath:       opts.LockPath,
		currentVersion: opts.CurrentVersion,
		interval:       opts.Interval,
		platform:       opts.Platform,
		out:            opts.Out,
		now:            opts.Now,
		http:           req.C().SetUserAgent(version.UserAgent()),
	}
}

// Run checks for an update when one is due (or forced) and then either runs
// next or, when a newer version was installed, stops so the user re-runs
// the command on the new binary. A failed fetch is returned and next is
// not run.
func (m *Manager) Run(ctx context.Context, store StateStore, force bool, next func() error) error {
	now := m.now()

	if !force && now.UnixMilli()-store.LastUpdateCheck() <= m.interval.Milliseconds() {
		return next()
	}

	if force {
		fmt.Fprintln(m.out, "Checking for updates...")
	}

	latest, err := m.fetchVersion(ctx, force)
	if err != nil {
		return err
	}

	if !validVersion(latest) {
		slog.Warn("update check returned an invalid version", "version", latest)
		m.saveCheck(store, now.Add(-m.interval).Add(InvalidRetryAfter))
		return next()
	}

	m.saveCheck(store, now)

	if semver.Compare(canonical(latest), canonical(m.currentVersion)) <= 0 {
		slog.Debug("no update available", "current", m.currentVersion, "latest", latest)
		return next()
	}

	if err := m.upgrade(ctx, latest); err != nil {
		return err
	}

	if !force {
		fmt.Fprintln(m.out, "Please run your command again")
	}
	return nil
}

func (m *Manager) saveCheck(store StateStore, at time.Time) {
	if err := store.SaveUpdateCheck(at.UnixMilli()); err != nil {
		slog.Warn("failed to save update check", "error", err)
	}
}

// fetchVersion returns the published version with CR/LF stripped.
func (m *Manager) fetchVersion(ctx context.Context, force bool) (string, error) {
	timeout := checkTimeout
	if force {
		timeout = forcedCheckTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := m.artifactURL(versionName)
	resp, err := m.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpdateCheck, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: Error %d: %s", ErrUpdateCheck, resp.StatusCode, strings.TrimSpace(resp.String()))
	}

	return strings.NewReplacer("\r", "", "\n", "").Replace(resp.String()), nil
}

func (m *Manager) artifactURL(name string) string {
	return m.repoURL + "/" + m.platform + "/" + name
}

// validVersion reports whether v is a full major.minor.patch version.
// semver alone accepts shorthands like v2 and v1.2.
func validVersion(v string) bool {
	c := canonical(v)
	if !semver.IsValid(c) {
		return false
	}
	base, _, _ := strings.Cut(c, "+")
	return semver.Canonical(c) == base
}

// canonical turns 1.2.3 into the v1.2.3 form semver expects.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
