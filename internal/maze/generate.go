package maze

import (
	"math/rand"

	"github.com/vovakirdan/echomaze/internal/core"
)

// Generate builds a perfect maze of w x h rooms by randomized depth-first
// carving. The matrix is (2h+1) x (2w+1); rooms sit on odd coordinates.
// Start is on the west edge and the single end on the east edge.
func Generate(w, h int, rng *rand.Rand) *Maze {
	w, h = core.Max(w, 1), core.Max(h, 1)
	m := New(2*h+1, 2*w+1)
	for y := range m.walls {
		for x := range m.walls[y] {
			m.walls[y][x] = true
		}
	}

	room := func(c core.Point) core.Point { return core.Pt(2*c.X+1, 2*c.Y+1) }
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	dirs := []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}}
	cur := core.Pt(rng.Intn(w), rng.Intn(h))
	visited[cur.Y][cur.X] = true
	m.SetWall(room(cur), false)

	stack := []core.Point{}
	for remaining := w*h - 1; remaining > 0; {
		var open []core.Point
		for _, d := range dirs {
			n := cur.Add(d)
			if n.X >= 0 && n.X < w && n.Y >= 0 && n.Y < h && !visited[n.Y][n.X] {
				open = append(open, n)
			}
		}
		if len(open) == 0 {
			cur, stack = stack[len(stack)-1], stack[:len(stack)-1]
			continue
		}

		next := open[rng.Intn(len(open))]
		a, b := room(cur), room(next)
		m.SetWall(core.Pt((a.X+b.X)/2, (a.Y+b.Y)/2), false)
		m.SetWall(b, false)
		visited[next.Y][next.X] = true
		stack = append(stack, cur)
		cur = next
		remaining--
	}

	m.Start = room(core.Pt(0, rng.Intn(h)))
	m.Ends = []core.Point{room(core.Pt(w-1, rng.Intn(h)))}
	return m
}
