package model

// Coordinate identifies a square on the board
type Coordinate struct {
	X int // 0-indexed from the left
	Y int // 0-indexed from the top
}

// Direction is one of the 8 compass directions
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionDeltas = [8][2]int{
	{0, -1},  // North
	{1, -1},  // NorthEast
	{1, 0},   // East
	{1, 1},   // SouthEast
	{0, 1},   // South
	{-1, 1},  // SouthWest
	{-1, 0},  // West
	{-1, -1}, // NorthWest
}

var directionNames = [8]string{
	"north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest",
}

// Opposite returns the reverse of this direction
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// String returns the lowercase compass name of the direction
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Add returns the coordinate one step in the given direction.
// The result may lie outside any particular board; bounds are the
// board's concern, not the coordinate's.
func (c Coordinate) Add(d Direction) Coordinate {
	delta := directionDeltas[d]
	return Coordinate{X: c.X + delta[0], Y: c.Y + delta[1]}
}

// Neighbors4 returns the four orthogonal neighbors in N, E, S, W order
func (c Coordinate) Neighbors4() [4]Coordinate {
	return [4]Coordinate{c.Add(North), c.Add(East), c.Add(South), c.Add(West)}
}

// Neighbors8 returns all eight surrounding coordinates
func (c Coordinate) Neighbors8() [8]Coordinate {
	var out [8]Coordinate
	for d := Direction(0); d < 8; d++ {
		out[d] = c.Add(d)
	}
	return out
}

// Flatten converts the coordinate to a 1D index for dense array storage
func (c Coordinate) Flatten(width int) int {
	return c.Y*width + c.X
}

// Unflatten converts a 1D index back into a coordinate
func Unflatten(index, width int) Coordinate {
	return Coordinate{X: index % width, Y: index / width}
}

// Distance returns the Manhattan distance between two coordinates
func (c Coordinate) Distance(other Coordinate) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Less orders coordinates row-major (top-to-bottom, then left-to-right)
func (c Coordinate) Less(other Coordinate) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
