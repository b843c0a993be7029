package chess

import "errors"

// Sentinel errors returned by Game. Compare with errors.Is.
var (
	// ErrIllegalMove means the requested move is not in the legal set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrPromotionRequired means a promoting move was submitted without a piece kind.
	ErrPromotionRequired = errors.New("promotion piece required")

	// ErrInvalidPromotion means the promotion kind is not knight, bishop, rook or queen.
	ErrInvalidPromotion = errors.New("invalid promotion")

	// ErrGameOver means the position is terminal and accepts no more moves.
	ErrGameOver = errors.New("game is over")
)
