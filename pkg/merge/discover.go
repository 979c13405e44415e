// File: pkg/merge/discover.go
package merge

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"srcpress/pkg/ignore"
	"srcpress/pkg/lang"
)

// candidate is a file that survived traversal-time filtering and awaits
// the size, text, and total-cap checks that run in sorted order.
type candidate struct {
	absPath string
	relPath string // display path, root name included
	size    int64
}

// Discoverer walks root directories and produces the ordered task list.
type Discoverer struct {
	rules  *ignore.RuleSet
	logger *zap.Logger

	// excludeAbs drops the destination file from the scan so a merge never
	// consumes its own output
	excludeAbs string

	// limits default to the contract constants; tests lower them
	maxFileSize  int64
	maxTotalSize int64
}

// NewDiscoverer returns a Discoverer with the contract limits.
func NewDiscoverer(rules *ignore.RuleSet, logger *zap.Logger) *Discoverer {
	return &Discoverer{
		rules:        rules,
		logger:       logger,
		maxFileSize:  MaxFileSize,
		maxTotalSize: MaxTotalSize,
	}
}

// Discover walks the roots and returns the admitted tasks in lexicographic
// display-path order, plus the recorded skips. Hidden entries are pruned
// whole during the walk and pattern-excluded files are dropped silently;
// skips are recorded only for empty, oversized, binary, unreadable, and
// over-cap candidates. A root that is missing or not a directory is a
// fatal error.
func (d *Discoverer) Discover(roots []string) ([]FileTask, []Skip, error) {
	candidates, err := d.collect(roots)
	if err != nil {
		return nil, nil, err
	}

	// Admission happens in output order so the total-size cutoff lands on
	// the same file no matter how the filesystem ordered the walk.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].relPath != candidates[j].relPath {
			return candidates[i].relPath < candidates[j].relPath
		}
		return candidates[i].absPath < candidates[j].absPath
	})

	return d.admit(candidates)
}

// collect traverses every root and gathers candidates, applying only the
// traversal-time filters: hidden pruning and pattern exclusion.
func (d *Discoverer) collect(roots []string) ([]candidate, error) {
	var candidates []candidate
	seen := make(map[string]bool, len(roots))

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
		}
		if seen[absRoot] {
			d.logger.Debug("Skipping duplicate root", zap.String("root", absRoot))
			continue
		}
		seen[absRoot] = true

		info, err := os.Stat(absRoot)
		if err != nil {
			return nil, fmt.Errorf("directory not found: %s", root)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("not a directory: %s", root)
		}

		rootName := filepath.Base(absRoot)
		walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				d.logger.Warn("Error accessing path during traversal",
					zap.String("path", path), zap.Error(err))
				return nil
			}
			if path == absRoot {
				return nil
			}

			// Hidden entries are cut out wholesale; a hidden directory
			// takes its entire subtree with it.
			if strings.HasPrefix(entry.Name(), ".") {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.IsDir() {
				return nil
			}
			if d.excludeAbs != "" && path == d.excludeAbs {
				return nil
			}

			size, ok := regularFileSize(path, entry)
			if !ok {
				return nil
			}

			rel, err := filepath.Rel(absRoot, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			// Pattern matching sees the root-relative path; exclusion is
			// silent by contract.
			if excluded, p := d.rules.ExcludedByPattern(rel); excluded {
				d.logger.Debug("File matches ignore pattern",
					zap.String("file", rel), zap.String("pattern", p.Line))
				return nil
			}

			candidates = append(candidates, candidate{
				absPath: path,
				relPath: rootName + "/" + rel,
				size:    size,
			})
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to traverse %s: %w", root, walkErr)
		}
	}
	return candidates, nil
}

// regularFileSize resolves the entry to a regular file's size, following
// symlinks one level. Broken links, devices, and sockets are dropped.
func regularFileSize(path string, entry fs.DirEntry) (int64, bool) {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return 0, false
		}
		return info.Size(), true
	}
	if !entry.Type().IsRegular() {
		return 0, false
	}
	info, err := entry.Info()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// admit runs the recorded-skip filters over sorted candidates and builds
// the final task list. Once the running total would exceed the cap,
// every remaining candidate is recorded as skipped rather than admitted,
// even when a later, smaller file would still have fit.
func (d *Discoverer) admit(candidates []candidate) ([]FileTask, []Skip, error) {
	var (
		tasks  []FileTask
		skips  []Skip
		total  int64
		capped bool
	)

	for _, c := range candidates {
		if c.size == 0 {
			skips = append(skips, Skip{RelPath: c.relPath, Reason: SkipEmpty})
			continue
		}
		if c.size > d.maxFileSize {
			skips = append(skips, Skip{RelPath: c.relPath, Reason: SkipOversize, Size: c.size})
			continue
		}
		if capped {
			// past the cap nothing is opened again; cheap checks only
			skips = append(skips, Skip{RelPath: c.relPath, Reason: SkipTotalLimit, Size: c.size})
			continue
		}

		text, err := isTextFile(c.absPath, c.size)
		if err != nil {
			d.logger.Warn("Failed to classify file",
				zap.String("file", c.relPath), zap.Error(err))
			skips = append(skips, Skip{RelPath: c.relPath, Reason: SkipUnreadable, Size: c.size, Err: err})
			continue
		}
		if !text {
			skips = append(skips, Skip{RelPath: c.relPath, Reason: SkipBinary, Size: c.size})
			continue
		}

		if total+c.size > d.maxTotalSize {
			capped = true
			d.logger.Warn("Total size limit reached, skipping remaining files",
				zap.Int64("limitBytes", d.maxTotalSize),
				zap.String("firstSkipped", c.relPath))
			skips = append(skips, Skip{RelPath: c.relPath, Reason: SkipTotalLimit, Size: c.size})
			continue
		}

		total += c.size
		tasks = append(tasks, FileTask{
			Index:   len(tasks),
			AbsPath: c.absPath,
			RelPath: c.relPath,
			Size:    c.size,
			Profile: lang.ProfileFor(filepath.Ext(c.absPath)),
		})
	}

	d.logger.Debug("Discovery complete",
		zap.Int("admitted", len(tasks)),
		zap.Int("skipped", len(skips)),
		zap.Int64("totalBytes", total))
	return tasks, skips, nil
}
