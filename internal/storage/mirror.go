package storage

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
)

// DefaultRepoURL is the repository publishing the calendar tables.
const DefaultRepoURL = "https://github.com/emilyboda/PhiladelphiaStadiumEvents.git"

// Runner runs an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner. Command output is included in the error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Mirror keeps a local clone of the calendar repository in sync with its remote.
type Mirror struct {
	RepoURL string
	Dir     string
	Branch  string
	Runner  Runner
}

// Sync clones the repository when Dir does not exist. Otherwise it fetches and
// hard-resets to the remote branch, discarding local changes.
func (m *Mirror) Sync(ctx context.Context) error {
	dir, err := homedir.Expand(m.Dir)
	if err != nil {
		return fmt.Errorf("expanding mirror directory: %w", err)
	}
	runner := m.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	repo := m.RepoURL
	if repo == "" {
		repo = DefaultRepoURL
	}
	branch := m.Branch
	if branch == "" {
		branch = "main"
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		logger.Info("cloning calendar repository", logger.Fields{"repo": repo, "dir": dir})
		if err := runner.Run(ctx, "git", "clone", "--branch", branch, repo, dir); err != nil {
			return fmt.Errorf("cloning repository: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking mirror directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("mirror path %s is not a directory", dir)
	}

	logger.Info("updating calendar repository", logger.Fields{"dir": dir, "branch": branch})
	if err := runner.Run(ctx, "git", "-C", dir, "fetch", "origin"); err != nil {
		return fmt.Errorf("fetching repository: %w", err)
	}
	if err := runner.Run(ctx, "git", "-C", dir, "reset", "--hard", "origin/"+branch); err != nil {
		return fmt.Errorf("resetting repository: %w", err)
	}
	return nil
}
