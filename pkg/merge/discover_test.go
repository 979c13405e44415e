package merge

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"

	"srcpress/pkg/ignore"
	"srcpress/pkg/lang"
)

// writeTree creates the given files under a fresh temp directory and
// returns its path. Keys are slash-separated relative paths.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newDiscoverer(t *testing.T, patterns ...string) *Discoverer {
	t.Helper()
	rules := ignore.NewRuleSet(nil)
	rules.AddPatterns(patterns...)
	return NewDiscoverer(rules, zap.NewNop())
}

func relPaths(tasks []FileTask) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.RelPath
	}
	return out
}

func TestDiscover_SortedOrder(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.txt":     "b",
		"a/z.txt":   "z",
		"a.txt":     "a",
		"c/d/e.txt": "e",
		"c/a.txt":   "ca",
	})
	d := newDiscoverer(t)

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %+v", skips)
	}

	root := filepath.Base(dir)
	want := []string{
		root + "/a.txt",
		root + "/a/z.txt",
		root + "/b.txt",
		root + "/c/a.txt",
		root + "/c/d/e.txt",
	}
	if got := relPaths(tasks); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	for i, task := range tasks {
		if task.Index != i {
			t.Errorf("task %s has index %d, want %d", task.RelPath, task.Index, i)
		}
	}
}

func TestDiscover_HiddenPrunedEntirely(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"visible.txt":          "v",
		".hidden.txt":          "h",
		".secret/inner.txt":    "i",
		"sub/.nested/deep.txt": "d",
		"sub/ok.txt":           "ok",
	})
	d := newDiscoverer(t)

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 0 {
		t.Errorf("hidden exclusion must be silent, got skips: %+v", skips)
	}

	root := filepath.Base(dir)
	want := []string{root + "/sub/ok.txt", root + "/visible.txt"}
	if got := relPaths(tasks); !reflect.DeepEqual(got, want) {
		t.Errorf("tasks = %v, want %v", got, want)
	}
}

func TestDiscover_PatternExclusionIsSilent(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.log": "log line",
		"app.py":  "x = 1\n",
	})
	d := newDiscoverer(t, "*.log")

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !strings.HasSuffix(tasks[0].RelPath, "/app.py") {
		t.Errorf("tasks = %v, want only app.py", relPaths(tasks))
	}
	if len(skips) != 0 {
		t.Errorf("pattern exclusion should record nothing, got %+v", skips)
	}
}

func TestDiscover_PatternsSeeRootRelativePaths(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"sub/x.py": "x",
		"sub/y.py": "y",
	})
	root := filepath.Base(dir)

	// the display prefix is not part of the matched path
	d := newDiscoverer(t, root+"/sub/x.py")
	tasks, _, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Errorf("display-prefixed pattern must not match, got tasks %v", relPaths(tasks))
	}

	d = newDiscoverer(t, "sub/x.py")
	tasks, _, err = d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !strings.HasSuffix(tasks[0].RelPath, "/sub/y.py") {
		t.Errorf("root-relative pattern should exclude sub/x.py, got %v", relPaths(tasks))
	}
}

func TestDiscover_BinarySkipped(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.py":  "print(1)\n",
		"b.bin": "BIN\x00DATA",
	})
	d := newDiscoverer(t)

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !strings.HasSuffix(tasks[0].RelPath, "/a.py") {
		t.Errorf("tasks = %v, want only a.py", relPaths(tasks))
	}
	if len(skips) != 1 || skips[0].Reason != SkipBinary {
		t.Fatalf("skips = %+v, want one binary skip", skips)
	}
	if !strings.HasSuffix(skips[0].RelPath, "/b.bin") {
		t.Errorf("skip path = %s, want b.bin", skips[0].RelPath)
	}
}

func TestDiscover_NullPastWindowStaysText(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"tail.dat": strings.Repeat("a", lang.ClassifyWindow) + "\x00",
	})
	d := newDiscoverer(t)

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Errorf("null byte past the window must not exclude the file, skips: %+v", skips)
	}
}

func TestDiscover_EmptySkipped(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"empty.txt": "",
		"full.txt":  "x",
	})
	d := newDiscoverer(t)

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !strings.HasSuffix(tasks[0].RelPath, "/full.txt") {
		t.Errorf("tasks = %v, want only full.txt", relPaths(tasks))
	}
	if len(skips) != 1 || skips[0].Reason != SkipEmpty {
		t.Errorf("skips = %+v, want one empty skip", skips)
	}
}

func TestDiscover_OversizeSkipped(t *testing.T) {
	d := newDiscoverer(t)
	d.maxFileSize = 16

	dir := writeTree(t, map[string]string{
		"big.txt": strings.Repeat("x", 17),
		"ok.txt":  "fine",
	})

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !strings.HasSuffix(tasks[0].RelPath, "/ok.txt") {
		t.Errorf("tasks = %v, want only ok.txt", relPaths(tasks))
	}
	if len(skips) != 1 || skips[0].Reason != SkipOversize || skips[0].Size != 17 {
		t.Errorf("skips = %+v, want one oversize skip of 17 bytes", skips)
	}
}

// Once the total cap trips, later candidates are skipped even when they
// would still fit, and all of them are recorded.
func TestDiscover_TotalLimitHardStop(t *testing.T) {
	d := newDiscoverer(t)
	d.maxTotalSize = 10

	dir := writeTree(t, map[string]string{
		"a.txt": "123456",
		"b.txt": "123456",
		"c.txt": "1234",
	})

	tasks, skips, err := d.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || !strings.HasSuffix(tasks[0].RelPath, "/a.txt") {
		t.Fatalf("tasks = %v, want only a.txt", relPaths(tasks))
	}
	if len(skips) != 2 {
		t.Fatalf("skips = %+v, want b.txt and c.txt", skips)
	}
	for _, sk := range skips {
		if sk.Reason != SkipTotalLimit {
			t.Errorf("skip %s reason = %v, want total-limit", sk.RelPath, sk.Reason)
		}
	}
	if !strings.HasSuffix(skips[0].RelPath, "/b.txt") || !strings.HasSuffix(skips[1].RelPath, "/c.txt") {
		t.Errorf("skips = %+v, want b.txt then c.txt", skips)
	}
}

func TestDiscover_RootMustBeDirectory(t *testing.T) {
	if _, _, err := newDiscoverer(t).Discover([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("missing root should be a fatal error")
	}

	dir := writeTree(t, map[string]string{"file.txt": "x"})
	file := filepath.Join(dir, "file.txt")
	if _, _, err := newDiscoverer(t).Discover([]string{file}); err == nil {
		t.Error("a plain file as root should be a fatal error")
	}
}

func TestDiscover_ProfileByExtension(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"s.py":  "x = 1\n",
		"n.txt": "hello\n",
	})
	tasks, _, err := newDiscoverer(t).Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range tasks {
		switch {
		case strings.HasSuffix(task.RelPath, ".py"):
			if task.Profile == nil || task.Profile.Name != "Python" {
				t.Errorf("%s: profile = %+v, want Python", task.RelPath, task.Profile)
			}
		case strings.HasSuffix(task.RelPath, ".txt"):
			if task.Profile != nil {
				t.Errorf("%s: profile = %q, want nil", task.RelPath, task.Profile.Name)
			}
		}
	}
}

func TestDiscover_DuplicateRootsCollapsed(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "a"})
	tasks, _, err := newDiscoverer(t).Discover([]string{dir, dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Errorf("duplicate roots should collapse, got %v", relPaths(tasks))
	}
}

func TestDiscover_MultipleRoots(t *testing.T) {
	dir1 := writeTree(t, map[string]string{"x.txt": "1"})
	dir2 := writeTree(t, map[string]string{"y.txt": "2"})

	tasks, _, err := newDiscoverer(t).Discover([]string{dir1, dir2})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %v, want two entries", relPaths(tasks))
	}
	if !sort.StringsAreSorted(relPaths(tasks)) {
		t.Errorf("tasks not sorted across roots: %v", relPaths(tasks))
	}
}
