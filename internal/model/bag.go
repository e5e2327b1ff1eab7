package model

import (
	"github.com/TruncateGame/Truncate-sub000/internal/dependencies/random"
)

// TileBag is the multiset of letter tiles remaining to be drawn.
// It refills itself from its letter distribution whenever it runs dry,
// so DrawTile always succeeds.
type TileBag struct {
	tiles        []rune
	distribution [26]int
	random       random.Random
}

// NewTileBag fills and shuffles a bag from the given letter distribution
func NewTileBag(distribution [26]int, rnd random.Random) *TileBag {
	bag := &TileBag{
		distribution: distribution,
		random:       rnd,
	}
	bag.refill()
	return bag
}

func (b *TileBag) refill() {
	for i, count := range b.distribution {
		letter := rune('a' + i)
		for range count {
			b.tiles = append(b.tiles, letter)
		}
	}
	b.shuffle()
}

// Fisher-Yates over the remaining tiles
func (b *TileBag) shuffle() {
	for i := len(b.tiles) - 1; i > 0; i-- {
		j := b.random.Intn(i + 1)
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	}
}

// DrawTile removes and returns one tile, refilling the bag first if it
// is empty
func (b *TileBag) DrawTile() rune {
	if len(b.tiles) == 0 {
		b.refill()
	}
	tile := b.tiles[len(b.tiles)-1]
	b.tiles = b.tiles[:len(b.tiles)-1]
	return tile
}

// ReturnTile puts a tile back into the bag, e.g. when it is destroyed
// in battle or truncated off the board. Special tiles (wildcards,
// explosives) are not returned to circulation.
func (b *TileBag) ReturnTile(tile rune) {
	if tile < 'a' || tile > 'z' {
		return
	}
	if len(b.tiles) == 0 {
		b.tiles = append(b.tiles, tile)
		return
	}
	// Insert at a random position so returned tiles are not immediately
	// redrawn in order
	i := b.random.Intn(len(b.tiles) + 1)
	b.tiles = append(b.tiles, 0)
	copy(b.tiles[i+1:], b.tiles[i:])
	b.tiles[i] = tile
}

// Remaining returns the number of tiles currently in the bag
func (b *TileBag) Remaining() int {
	return len(b.tiles)
}

// Clone returns an independent copy sharing the same random source
func (b *TileBag) Clone() *TileBag {
	tiles := make([]rune, len(b.tiles))
	copy(tiles, b.tiles)
	return &TileBag{
		tiles:        tiles,
		distribution: b.distribution,
		random:       b.random,
	}
}
