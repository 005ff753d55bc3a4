// Package levels loads level definitions from a directory of YAML, TOML or
// JSON files, falling back to the levels embedded in the binary.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/vovakirdan/echomaze/internal/levels/formats"
)

var (
	// ErrNotFound is returned when no file defines the requested level.
	ErrNotFound = errors.New("levels: level not found")
	// ErrInvalid is returned when a level file does not describe a playable level.
	ErrInvalid = errors.New("levels: invalid level")
)

//go:embed builtin/*
var builtinFS embed.FS

// DefaultCacheSize is the number of parsed levels a Loader keeps.
const DefaultCacheSize = 16

// Loader reads levels from Root and then from the builtin set.
// It is safe for concurrent use.
type Loader struct {
	Root string

	mu    sync.Mutex
	cache *lru.Cache // not safe for concurrent use, guarded by mu
}

// NewLoader creates a loader over root. An empty root uses only the
// builtin levels.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, cache: lru.New(DefaultCacheSize)}
}

type source struct {
	fsys   fs.FS
	prefix string
}

func (l *Loader) sources() []source {
	var out []source
	if l.Root != "" {
		if info, err := os.Stat(l.Root); err == nil && info.IsDir() {
			out = append(out, source{fsys: os.DirFS(l.Root), prefix: l.Root + string(os.PathSeparator)})
		}
	}
	sub, err := fs.Sub(builtinFS, "builtin")
	if err == nil {
		out = append(out, source{fsys: sub, prefix: "builtin:"})
	}
	return out
}

// LoadByID returns the level with the given id. The file <id>.<ext> in Root
// wins over a builtin level with the same id.
func (l *Loader) LoadByID(id string) (Level, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return Level{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.cache.Get(id); ok {
		return v.(Level), nil
	}

	for _, src := range l.sources() {
		for _, ext := range formats.FormatExtensions() {
			name := id + ext
			data, err := fs.ReadFile(src.fsys, name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return Level{}, fmt.Errorf("levels: cannot read %s%s: %w", src.prefix, name, err)
			}
			lvl, err := parse(data, name, src.prefix+name)
			if err != nil {
				return Level{}, err
			}
			l.cache.Add(id, lvl)
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// LoadFile loads a single level file outside any root.
func (l *Loader) LoadFile(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Level{}, fmt.Errorf("%w: %s", ErrNotFound, filePath)
		}
		return Level{}, fmt.Errorf("levels: cannot read %s: %w", filePath, err)
	}
	return parse(data, filepath.Base(filePath), filePath)
}

// IDs returns every available level id in play order.
func (l *Loader) IDs() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, src := range l.sources() {
		entries, err := fs.ReadDir(src.fsys, ".")
		if err != nil {
			return nil, fmt.Errorf("levels: cannot list %s: %w", src.prefix, err)
		}
		for _, e := range entries {
			if e.IsDir() || !supported(path.Ext(e.Name())) {
				continue
			}
			id := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	SortIDs(ids)
	return ids, nil
}

// LoadAll loads every available level in play order. Invalid files are
// skipped; the first error is returned alongside the levels that loaded.
func (l *Loader) LoadAll() ([]Level, error) {
	ids, err := l.IDs()
	if err != nil {
		return nil, err
	}
	var (
		levels   []Level
		firstErr error
	)
	for _, id := range ids {
		lvl, err := l.LoadByID(id)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		levels = append(levels, lvl)
	}
	return levels, firstErr
}

// SortIDs orders ids numerically when both are numbers, lexically otherwise.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
}

func parse(data []byte, name, src string) (Level, error) {
	ext := path.Ext(name)
	parsed, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("%w: %s: %v", ErrInvalid, src, err)
	}
	lvl, err := fromFormat(parsed, strings.TrimSuffix(name, ext))
	if err != nil {
		return Level{}, err
	}
	lvl.Source = src
	return lvl, nil
}

func supported(ext string) bool {
	for _, e := range formats.FormatExtensions() {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
