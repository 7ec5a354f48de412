// Package workspace owns the versioned output directory of a run and the
// manifest persisted inside it.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/gofrs/flock"

	"github.com/nguyentantai21042004/voitext/internal/media"
)

// ErrWorkspaceExists is returned when the chosen version directory already
// exists. The count policy can hit this after non-contiguous deletions.
var ErrWorkspaceExists = errors.New("workspace directory already exists")

// VersionPolicy picks the next version suffix from existing directories.
type VersionPolicy int

const (
	// CountPolicy uses the number of matching directories plus one.
	CountPolicy VersionPolicy = iota
	// MaxPolicy uses the largest matching suffix plus one.
	MaxPolicy
)

// ParseVersionPolicy maps a config value to a VersionPolicy.
func ParseVersionPolicy(s string) (VersionPolicy, error) {
	switch s {
	case "", "count":
		return CountPolicy, nil
	case "max":
		return MaxPolicy, nil
	}
	return CountPolicy, fmt.Errorf("unknown version policy %q", s)
}

const lockFileName = ".voitext.lock"

// mkdir creates the per-kind directories; swapped in tests.
var mkdir = os.Mkdir

// Workspace is the directory tree of one run.
type Workspace struct {
	Name    string
	Version int
	Root    string
	dirs    map[media.Kind]string
}

// Dir returns the directory holding files of kind k.
func (w *Workspace) Dir(k media.Kind) string { return w.dirs[k] }

// Path returns the path of the index-th file of kind k, e.g. videos/video3.webm.
func (w *Workspace) Path(k media.Kind, index int) string {
	return filepath.Join(w.dirs[k], k.FileName(index))
}

// ManifestPath is where the manifest named name is stored.
func (w *Workspace) ManifestPath(name string) string {
	return filepath.Join(w.Root, name+media.Document.Ext())
}

// Allocator creates workspaces under an output root.
type Allocator struct {
	root   string
	policy VersionPolicy
}

// NewAllocator returns an Allocator for outputRoot.
func NewAllocator(outputRoot string, policy VersionPolicy) *Allocator {
	return &Allocator{root: outputRoot, policy: policy}
}

// Allocate creates <root>/<baseName><version>/{videos,sounds,images}. It
// never reuses an existing directory. Concurrent allocations in the same
// root are serialized with a file lock.
func (a *Allocator) Allocate(baseName string) (*Workspace, error) {
	if baseName == "" {
		return nil, errors.New("allocate workspace: empty base name")
	}
	if err := os.MkdirAll(a.root, 0755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	lock := flock.New(filepath.Join(a.root, lockFileName))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock output root: %w", err)
	}
	defer lock.Unlock()

	version, err := a.nextVersion(baseName)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(a.root, baseName+strconv.Itoa(version))
	if err := os.Mkdir(root, 0755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkspaceExists, root)
		}
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	ws := &Workspace{
		Name:    baseName,
		Version: version,
		Root:    root,
		dirs:    make(map[media.Kind]string),
	}
	for _, k := range media.WorkspaceKinds {
		dir := filepath.Join(root, k.Dir())
		if err := mkdir(dir, 0755); err != nil {
			// a leftover root would shift every later count-based version
			os.RemoveAll(root)
			return nil, fmt.Errorf("create %s dir: %w", k, err)
		}
		ws.dirs[k] = dir
	}

	return ws, nil
}

// nextVersion scans sibling directories whose name starts with baseName
// followed by digits, case-insensitively.
func (a *Allocator) nextVersion(baseName string) (int, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return 0, fmt.Errorf("read output root: %w", err)
	}

	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(baseName) + `(\d+)`)
	count, highest := 0, 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		count++
		if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
			highest = v
		}
	}

	if a.policy == MaxPolicy {
		return highest + 1, nil
	}
	return count + 1, nil
}
