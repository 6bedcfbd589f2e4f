package montecarlo

import "errors"

var (
	ErrNoSamples         = errors.New("at least one sample is required")
	ErrInvalidTarget     = errors.New("invalid target player")
	ErrInvalidConstraint = errors.New("invalid constraint")
	ErrUnknownPinScope   = errors.New("unknown pin scope")
)
