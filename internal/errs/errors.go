package errs

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMatchNotFound     = errors.New("match not found")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrObserverForbidden = errors.New("observers cannot act on the game")
	ErrStaleMatch        = errors.New("match was modified concurrently")
	ErrSeatTaken         = errors.New("seat already taken")
	ErrBadRequest        = errors.New("bad request")
	ErrUserExists        = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
)
