package engine

import "errors"

// Action validation errors. Any of these means the action was rejected and
// the game state is untouched; the caller should try a different action.
var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrBadIndex        = errors.New("index out of range")
	ErrNotEnoughGold   = errors.New("not enough gold")
	ErrOutOfStock      = errors.New("card out of stock")
	ErrShopFull        = errors.New("shop has no open slot")
	ErrAlreadyBought   = errors.New("already bought a card this turn")
	ErrNotEnoughMoves  = errors.New("not enough movement capacity")
	ErrIllegalStep     = errors.New("illegal step")
	ErrOccupied        = errors.New("destination hex is occupied")
	ErrCaveVisited     = errors.New("cave already visited")
	ErrCaveEmpty       = errors.New("cave has no tokens left")
	ErrNoTrashesLeft   = errors.New("no trash allowance left")
	ErrWrongCardCount  = errors.New("wrong number of cards for this move")
	ErrWrongTokenCount = errors.New("wrong number of tokens for this move")
	ErrNoDrawEffect    = errors.New("referenced card or token cannot draw")
)

// ErrCorruptState signals an invariant violation: a corrupted snapshot or an
// engine bug. Callers should treat the game as unrecoverable.
var ErrCorruptState = errors.New("corrupt game state")
