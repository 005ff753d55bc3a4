package levels

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/echomaze/internal/core"
)

func TestBuiltinIDs(t *testing.T) {
	ids, err := NewLoader("").IDs()
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	expected := []string{"1", "2", "3"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("IDs = %v, expected %v", ids, expected)
	}
}

func TestBuiltinLevelsArePlayable(t *testing.T) {
	levels, err := NewLoader("").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("loaded %d levels, expected 3", len(levels))
	}

	for _, lvl := range levels {
		m := lvl.Maze()
		seen := map[core.Point]bool{m.Start: true}
		queue := []core.Point{m.Start}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, d := range []core.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
				q := p.Add(d)
				if !m.Wall(q) && !seen[q] {
					seen[q] = true
					queue = append(queue, q)
				}
			}
		}
		for _, e := range lvl.Ends {
			if !seen[e] {
				t.Errorf("level %s: end %v unreachable", lvl.ID, e)
			}
		}
		for _, b := range lvl.Boxes {
			if !seen[core.Pt(b.Rect.X, b.Rect.Y)] {
				t.Errorf("level %s: box at %v unreachable", lvl.ID, b.Rect)
			}
		}
	}
}

func TestLoadBuiltinTOML(t *testing.T) {
	lvl, err := NewLoader("").LoadByID("3")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	if lvl.Name != "The Labyrinth" || lvl.Source != "builtin:3.toml" {
		t.Errorf("got %q from %q", lvl.Name, lvl.Source)
	}
	if len(lvl.Boxes) != 2 || lvl.Boxes[1].Color != core.ColorWebGreen {
		t.Errorf("boxes = %+v", lvl.Boxes)
	}
	if lvl.Boxes[1].Reveal != core.NewRect(16, 8, 17, 9) {
		t.Errorf("reveal = %+v", lvl.Boxes[1].Reveal)
	}
	if lvl.Boxes[0].Reveal != core.NewRect(0, 0, lvl.Map.Cols(), lvl.Map.Rows()) {
		t.Error("reveal defaults to the whole map")
	}
}

func TestLoadFromRootOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1.yaml", "name: Custom\nmap:\n  - \"#####\"\n  - \"#S E#\"\n  - \"#####\"\n")

	lvl, err := NewLoader(dir).LoadByID("1")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	if lvl.Name != "Custom" || lvl.ID != "1" {
		t.Errorf("got %+v", lvl)
	}
	if lvl.Start != core.Pt(1, 1) || !reflect.DeepEqual(lvl.Ends, []core.Point{core.Pt(3, 1)}) {
		t.Errorf("start %v ends %v", lvl.Start, lvl.Ends)
	}
}

func TestLoadNotFound(t *testing.T) {
	l := NewLoader(t.TempDir())
	for _, id := range []string{"99", "", "../1"} {
		if _, err := l.LoadByID(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("LoadByID(%q) error = %v, expected ErrNotFound", id, err)
		}
	}
	if _, err := l.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFile error = %v, expected ErrNotFound", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":    "map: [unclosed",
		"empty":     "name: nothing\n",
		"no start":  "map:\n  - \"###\"\n  - \"# E\"\n",
		"no end":    "map:\n  - \"###\"\n  - \"#S \"\n",
		"wall end":  "map:\n  - \"###\"\n  - \"#S \"\nends: [[0, 0]]\n",
		"bad box":   "map:\n  - \"#S E\"\nboxes:\n  - color: nope\n    at: [1, 0]\n",
		"off box":   "map:\n  - \"#S E\"\nboxes:\n  - color: red\n    at: [3, 0]\n    size: [4, 1]\n",
		"overlap":   "map:\n  - \"#S  E\"\nboxes:\n  - color: red\n    at: [1, 0]\n    size: [2, 1]\n  - color: blue\n    at: [2, 0]\n",
		"no reveal": "map:\n  - \"#S E\"\nboxes:\n  - color: red\n    at: [2, 0]\n    reveal: [0, 0, 0, 1]\n",
		"off talk":  "map:\n  - \"#S E\"\ndialogue:\n  - at: [9, 9]\n    text: hi\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "x.yaml", content)
			_, err := NewLoader(dir).LoadByID("x")
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestIDsMergeRootAndBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "10.yaml", "map: [\"#S E#\"]\n")
	writeFile(t, dir, "bonus.toml", "map = [\"#S E#\"]\n")
	writeFile(t, dir, "notes.txt", "ignored")

	ids, err := NewLoader(dir).IDs()
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	expected := []string{"1", "2", "3", "10", "bonus"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("IDs = %v, expected %v", ids, expected)
	}
}

func TestCacheReturnsSameLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.yaml", "name: Before\nmap: [\"#S E#\"]\n")
	l := NewLoader(dir)

	if _, err := l.LoadByID("c"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "c.yaml", "name: After\nmap: [\"#S E#\"]\n")

	lvl, err := l.LoadByID("c")
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Name != "Before" {
		t.Errorf("Name = %q, expected cached level", lvl.Name)
	}
}

func TestBoxAt(t *testing.T) {
	lvl, err := NewLoader("").LoadByID("2")
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := lvl.BoxAt(core.Pt(4, 11)); !ok || b.Color != core.ColorSky {
		t.Errorf("BoxAt(4,11) = %+v, %v", b, ok)
	}
	if _, ok := lvl.BoxAt(core.Pt(1, 1)); ok {
		t.Error("no box at the start")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
