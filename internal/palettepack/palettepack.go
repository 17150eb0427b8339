package palettepack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/texhue/texhue/internal/logger"
	texerrors "github.com/texhue/texhue/pkg/errors"
)

// Status describes a pack checkout relative to its configured remote.
type Status string

const (
	// StatusMissing means no checkout exists yet.
	StatusMissing Status = "missing"
	// StatusDrifted means a checkout exists but does not match the remote,
	// or the directory is not a git repository at all.
	StatusDrifted Status = "drifted"
	// StatusSynced means the checkout matches the configured remote.
	StatusSynced Status = "synced"
)

// Syncer manages palette pack checkouts under a single directory, one
// subdirectory per pack.
type Syncer struct {
	dir string
	log *logger.Logger
}

// NewSyncer returns a Syncer rooted at dir.
func NewSyncer(dir string, log *logger.Logger) *Syncer {
	return &Syncer{dir: dir, log: log}
}

// PackName derives the checkout directory name from a repository URL.
func PackName(url string) string {
	base := filepath.Base(strings.TrimSuffix(strings.TrimRight(url, "/"), ".git"))
	if base == "." || base == "/" || base == "" {
		return "pack"
	}
	return base
}

// PackDir returns the checkout directory for the given repository URL.
func (s *Syncer) PackDir(url string) string {
	return filepath.Join(s.dir, PackName(url))
}

// Inspect reports the local state of the pack checkout without touching the
// network. The detail string explains drift when there is any.
func (s *Syncer) Inspect(url string) (Status, string, error) {
	dest := s.PackDir(url)

	if _, err := os.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, fmt.Sprintf("no checkout at %s", dest), nil
		}
		return StatusMissing, "", texerrors.NewSyncError(PackName(url), err)
	}

	repo, err := git.PlainOpen(dest)
	if err != nil {
		return StatusDrifted, fmt.Sprintf("%s exists but is not a git repository", dest), nil
	}

	remote, err := repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return StatusDrifted, "checkout has no origin remote", nil
	}

	if actual := remote.Config().URLs[0]; actual != url {
		return StatusDrifted, fmt.Sprintf("origin is %s (expected %s)", actual, url), nil
	}

	return StatusSynced, "", nil
}

// Sync clones the pack when missing. Existing checkouts are verified, never
// rewritten: drift is reported so the user can resolve it deliberately.
func (s *Syncer) Sync(ctx context.Context, url string, branch string) (Status, error) {
	status, detail, err := s.Inspect(url)
	if err != nil {
		return status, err
	}

	switch status {
	case StatusSynced:
		s.log.WithFields(map[string]any{"pack": PackName(url)}).Debug("pack already synced")
		return StatusSynced, nil
	case StatusDrifted:
		return StatusDrifted, texerrors.NewSyncError(PackName(url), fmt.Errorf("%s", detail))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return StatusMissing, texerrors.NewSyncError(PackName(url), err)
	}

	cloneOpts := &git.CloneOptions{URL: url}
	if branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		cloneOpts.SingleBranch = true
	}

	dest := s.PackDir(url)
	if _, err := git.PlainCloneContext(ctx, dest, false, cloneOpts); err != nil {
		return StatusMissing, texerrors.NewSyncError(PackName(url), err)
	}

	s.log.WithFields(map[string]any{"pack": PackName(url), "dest": dest}).Info("pack cloned")
	return StatusSynced, nil
}

// Packs lists the names of every pack checkout present on disk.
func (s *Syncer) Packs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
