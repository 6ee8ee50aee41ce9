package updater

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/klauspost/compress/gzip"
	"github.com/logdna/logdna-cli/internal/utils"
)

// upgrade downloads the gzipped binary for latest and atomically replaces the
// install path with it. The old binary is untouched if anything fails.
func (m *Manager) upgrade(ctx context.Context, latest string) error {
	fmt.Fprintf(m.out, "Performing upgrade from %s to %s...\n", m.currentVersion, latest)

	if err := utils.EnsureParent(m.lockPath); err != nil {
		return fmt.Errorf("updater: lock dir: %w", err)
	}

	lock := flock.New(m.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("updater: lock: %w", err)
	}
	if !locked {
		return ErrUpdateInProgress
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("failed to release update lock", "error", err)
		}
	}()

	target, err := m.resolveInstallPath()
	if err != nil {
		return err
	}

	url := m.artifactURL(artifactName)
	slog.Debug("downloading update", "url", url, "target", target)

	resp, err := m.http.R().
		SetContext(ctx).
		DisableAutoReadResponse().
		Get(url)
	if err != nil {
		return fmt.Errorf("updater: download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("updater: download %s: %s", url, resp.Status)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("updater: decompress: %w", err)
	}
	defer gz.Close()

	var written int64
	err = utils.WriteFileAtomic(target, 0o755, func(w io.Writer) error {
		n, err := io.Copy(w, gz)
		if err != nil {
			return fmt.Errorf("updater: decompress: %w", err)
		}
		if n == 0 {
			return ErrEmptyArtifact
		}
		written = n
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Successfully upgraded logdna-cli to %s (%s)\n", latest, humanize.Bytes(uint64(written)))
	return nil
}

func (m *Manager) resolveInstallPath() (string, error) {
	if m.installPath != "" {
		return utils.ResolvePath(m.installPath)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("updater: locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}
