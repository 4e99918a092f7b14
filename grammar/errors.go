package grammar

import "errors"

// ErrInvalidState is the error wfsa.WFSA.FinalWeight panics with (wrapped)
// when asked for the final weight of a state that is not final. Per spec §7
// this is a fatal, programmer-error class of failure.
var ErrInvalidState = errors.New("grammar: invalid state")

// ErrInvalidTransition names the invalid-transition error kind (spec §7).
// No function in this module returns it: wfsa.WFSA.DestinationAndWeight
// reports a missing arc through its boolean result instead.
var ErrInvalidTransition = errors.New("grammar: invalid transition")
