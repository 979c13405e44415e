package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// IsGitURL reports whether the input names a remote repository rather than
// a local directory. SSH shorthand and the .git suffix are recognized;
// bare https URLs are ambiguous and treated as local paths.
func IsGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") || strings.HasPrefix(input, "git@")
}

// CloneGitURL clones the repository's default branch, shallow and single
// branch, into a fresh temporary directory named after the repository so
// relative paths in the output stay stable across runs. The returned
// cleanup removes the clone.
func CloneGitURL(url string, logger *zap.Logger) (string, func(), error) {
	tempRoot, err := os.MkdirTemp("", "srcpress-git-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tempRoot) }

	dir := filepath.Join(tempRoot, repoNameFromURL(url))
	logger.Info("Cloning repository", zap.String("url", url), zap.String("dir", dir))

	_, err = git.PlainClone(dir, false, &git.CloneOptions{
		URL:           url,
		Progress:      os.Stderr,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return dir, cleanup, nil
}

// ResolvePaths replaces git URLs in the path list with freshly cloned
// working directories. The returned cleanup removes every clone and is
// safe to call when no clone happened.
func ResolvePaths(paths []string, logger *zap.Logger) ([]string, func(), error) {
	resolved := make([]string, 0, len(paths))
	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	for _, p := range paths {
		if !IsGitURL(p) {
			resolved = append(resolved, p)
			continue
		}
		dir, remove, err := CloneGitURL(p, logger)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, remove)
		resolved = append(resolved, dir)
	}
	return resolved, cleanup, nil
}

// repoNameFromURL extracts the repository name from a clone URL.
func repoNameFromURL(url string) string {
	name := strings.TrimRight(url, "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "repository"
	}
	return name
}
