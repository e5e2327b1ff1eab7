package model

// Connectivity and distance analysis over the grid. Everything here is
// worklist-based rather than recursive so deep boards cannot blow the
// stack.

// DepthFirstSearch returns every coordinate reachable from start by
// stepping through orthogonal neighbors occupied by the same player as
// the starting square. A dock seeds reachability for its owner. The
// result includes start itself when start is traversable.
func (b *Board) DepthFirstSearch(start Coordinate) map[Coordinate]bool {
	reachable := make(map[Coordinate]bool)
	sq, err := b.Get(start)
	if err != nil {
		return reachable
	}
	var player int
	switch sq.Kind {
	case KindOccupied, KindDock:
		player = sq.Player
	default:
		return reachable
	}

	stack := []Coordinate{start}
	reachable[start] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range b.neighbors4In(cur) {
			if reachable[n] {
				continue
			}
			nsq := b.mustGet(n)
			if (nsq.Kind == KindOccupied || nsq.Kind == KindDock) && nsq.Player == player {
				reachable[n] = true
				stack = append(stack, n)
			}
		}
	}
	return reachable
}

// Truncate removes every occupied square no longer connected to any
// dock, returning each removed tile to the bag. It is idempotent:
// a second run with no intervening mutation removes nothing.
func (b *Board) Truncate(bag *TileBag) []Change {
	connected := make(map[Coordinate]bool)
	for _, dock := range b.Docks {
		for c := range b.DepthFirstSearch(dock) {
			connected[c] = true
		}
	}

	var changes []Change
	for y, row := range b.Squares {
		for x, sq := range row {
			if sq.Kind != KindOccupied {
				continue
			}
			c := Coordinate{X: x, Y: y}
			if connected[c] {
				continue
			}
			bag.ReturnTile(sq.Tile)
			b.Squares[y][x] = LandSquare()
			changes = append(changes, BoardChanged(sq, c, ActionTruncated))
		}
	}
	return changes
}

// BoardDistances is a pair of distance fields over the board, indexed
// by flattened coordinate. Attackable counts steps through clear land
// or the player's own tiles, halting at squares within reach of an
// opponent; Direct is an unrestricted breadth-first distance. A
// negative entry means unreachable. This is a transient query result,
// not persisted state.
type BoardDistances struct {
	width      int
	attackable []int
	direct     []int
}

// Attackable returns the attack distance to the coordinate
func (d *BoardDistances) Attackable(c Coordinate) (int, bool) {
	idx := c.Flatten(d.width)
	if idx < 0 || idx >= len(d.attackable) || d.attackable[idx] < 0 {
		return 0, false
	}
	return d.attackable[idx], true
}

// Direct returns the unrestricted distance to the coordinate
func (d *BoardDistances) Direct(c Coordinate) (int, bool) {
	idx := c.Flatten(d.width)
	if idx < 0 || idx >= len(d.direct) || d.direct[idx] < 0 {
		return 0, false
	}
	return d.direct[idx], true
}

// FloodFillAttacks computes the distance fields for a player, seeded at
// every dock and tile the player owns.
func (b *Board) FloodFillAttacks(player int) *BoardDistances {
	var sources []Coordinate
	for y, row := range b.Squares {
		for x, sq := range row {
			if (sq.Kind == KindOccupied || sq.Kind == KindDock) && sq.Player == player {
				sources = append(sources, Coordinate{X: x, Y: y})
			}
		}
	}
	return b.floodFill(sources, player)
}

// FloodFill computes the distance fields from a single starting square.
// The square's owner determines whose movement rules apply; a square
// with no owner yields only the direct field.
func (b *Board) FloodFill(from Coordinate) *BoardDistances {
	sq, err := b.Get(from)
	if err != nil {
		return &BoardDistances{width: b.Width()}
	}
	player := -1
	if sq.Kind == KindOccupied || sq.Kind == KindDock || sq.Kind == KindTown {
		player = sq.Player
	}
	return b.floodFill([]Coordinate{from}, player)
}

// floodFill is a modified multi-source BFS. A coordinate is revisited
// whenever a strictly shorter distance is found, and any of the
// player's own tiles encountered mid-flood becomes a fresh zero-cost
// source: the player can extend equally fast from any tile they own.
func (b *Board) floodFill(sources []Coordinate, player int) *BoardDistances {
	w, h := b.Width(), b.Height()
	dist := &BoardDistances{
		width:      w,
		attackable: make([]int, w*h),
		direct:     make([]int, w*h),
	}
	for i := range dist.attackable {
		dist.attackable[i] = -1
		dist.direct[i] = -1
	}

	// Direct field: plain BFS through anything that is not water
	queue := make([]Coordinate, 0, len(sources))
	for _, s := range sources {
		dist.direct[s.Flatten(w)] = 0
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := dist.direct[cur.Flatten(w)] + 1
		for _, n := range b.neighbors4In(cur) {
			nsq := b.mustGet(n)
			if nsq.Kind == KindWater {
				continue
			}
			idx := n.Flatten(w)
			if dist.direct[idx] < 0 || next < dist.direct[idx] {
				dist.direct[idx] = next
				queue = append(queue, n)
			}
		}
	}

	if player < 0 {
		return dist
	}

	// Attackable field: flood through clear land and own tiles, with
	// own tiles acting as zero-cost sources, stopping at any square an
	// opponent already borders
	queue = queue[:0]
	for _, s := range sources {
		dist.attackable[s.Flatten(w)] = 0
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if b.bordersOpponent(cur, player) {
			// Reachable for an attack, but the flood goes no further
			continue
		}
		next := dist.attackable[cur.Flatten(w)] + 1
		for _, n := range b.neighbors4In(cur) {
			nsq := b.mustGet(n)
			step := next
			switch {
			case nsq.Kind == KindOccupied && nsq.Player == player:
				step = 0
			case nsq.Kind == KindDock && nsq.Player == player:
				step = 0
			case nsq.Kind == KindLand:
			default:
				continue
			}
			idx := n.Flatten(w)
			if dist.attackable[idx] < 0 || step < dist.attackable[idx] {
				dist.attackable[idx] = step
				queue = append(queue, n)
			}
		}
	}
	return dist
}

// bordersOpponent reports whether any orthogonal neighbor is occupied
// by a different player
func (b *Board) bordersOpponent(c Coordinate, player int) bool {
	for _, n := range b.neighbors4In(c) {
		nsq := b.mustGet(n)
		if nsq.Kind == KindOccupied && nsq.Player != player {
			return true
		}
	}
	return false
}

// ShortestPathBetween finds the shortest route through open land
// between two squares. The returned path excludes both endpoints. The
// second result is false when no route exists.
func (b *Board) ShortestPathBetween(from, to Coordinate) ([]Coordinate, bool) {
	if !b.Contains(from) || !b.Contains(to) {
		return nil, false
	}
	prev := make(map[Coordinate]Coordinate)
	visited := map[Coordinate]bool{from: true}
	queue := []Coordinate{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range b.neighbors4In(cur) {
			if visited[n] {
				continue
			}
			if n == to {
				// Walk back to produce the interior path
				var path []Coordinate
				for at := cur; at != from; at = prev[at] {
					path = append(path, at)
				}
				reverseCoords(path)
				return path, true
			}
			if b.mustGet(n).Kind != KindLand {
				continue
			}
			visited[n] = true
			prev[n] = cur
			queue = append(queue, n)
		}
	}
	return nil, false
}
