// internal/level/loader.go
//
// Filesystem-backed level source. Layout under the root:
//
//	<lang>/levels.json    level-number → filename mapping
//	<lang>/<file>.json    level files
//
// Mappings are read once per language and cached; level files are read on
// every request (levels are small and authoring may replace them).

package level

import (
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"sync"

	"github.com/wordmine/go-server/internal/words"
)

// Source resolves a level number to a playable level.
type Source interface {
	// Level returns the level for num, the filename it came from (empty for
	// synthesized levels), or an error if the level cannot be resolved.
	Level(lang words.Language, num int, rng *rand.Rand) (*Level, string, error)
}

// Loader reads levels from a directory tree.
type Loader struct {
	fsys fs.FS

	mu       sync.Mutex
	mappings map[words.Language]Mapping
}

// NewLoader constructs a Loader over fsys (typically os.DirFS(LEVELS_DIR)).
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, mappings: make(map[words.Language]Mapping)}
}

// Level implements Source.
func (l *Loader) Level(lang words.Language, num int, rng *rand.Rand) (*Level, string, error) {
	m, err := l.mapping(lang)
	if err != nil {
		return nil, "", err
	}
	filename, ok := m.PickFile(num, rng)
	if !ok {
		return nil, "", fmt.Errorf("level: no mapping for level %d (%s)", num, lang)
	}
	data, err := fs.ReadFile(l.fsys, path.Join(string(lang), filename))
	if err != nil {
		return nil, "", fmt.Errorf("level: read %s: %w", filename, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, "", err
	}
	return lvl, filename, nil
}

// LevelFile reads one level file directly, bypassing the mapping. Used when
// resuming a checkpoint that recorded which file it was playing.
func (l *Loader) LevelFile(lang words.Language, filename string) (*Level, error) {
	data, err := fs.ReadFile(l.fsys, path.Join(string(lang), filename))
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", filename, err)
	}
	return Parse(data)
}

// mapping loads and caches the levels.json mapping for lang.
func (l *Loader) mapping(lang words.Language) (Mapping, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.mappings[lang]; ok {
		return m, nil
	}
	data, err := fs.ReadFile(l.fsys, path.Join(string(lang), "levels.json"))
	if err != nil {
		return nil, fmt.Errorf("level: read mapping for %s: %w", lang, err)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, err
	}
	l.mappings[lang] = m
	return m, nil
}
