package model

import "errors"

// Gameplay errors. All of these are user-triggerable and recoverable:
// the caller surfaces the message and asks for a different move. A move
// that fails with any of these must leave game state completely untouched.
var (
	ErrInvalidPosition       = errors.New("position does not exist on this board")
	ErrOutsideBoard          = errors.New("position is outside the board dimensions")
	ErrEmptySquareInWord     = errors.New("a square in the word is unexpectedly empty")
	ErrNonExistentPlayer     = errors.New("player does not exist in this game")
	ErrSelfSwap              = errors.New("cannot swap a square with itself")
	ErrUnoccupiedSwap        = errors.New("cannot swap an empty square")
	ErrUnownedSwap           = errors.New("cannot swap tiles you do not own")
	ErrDisjointSwap          = errors.New("swapped tiles must be connected to each other")
	ErrNoSwapping            = errors.New("swapping is not allowed in this game")
	ErrTooManySwaps          = errors.New("no swaps remaining")
	ErrNoopSwap              = errors.New("swapping identical tiles changes nothing")
	ErrOccupiedPlace         = errors.New("square is already occupied")
	ErrNonAdjacentPlace      = errors.New("tiles must be placed next to your own")
	ErrPlayerDoesNotHaveTile = errors.New("tile is not in the player's hand")

	// Turn sequencing errors
	ErrGameOver    = errors.New("game is already over")
	ErrWrongPlayer = errors.New("not this player's turn")
	ErrNotStarted  = errors.New("game has not been started")
)
