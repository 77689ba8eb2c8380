package safezone

import "errors"

var (
	// ErrInvalidArgument is returned for caller mistakes such as blank zone names
	// or non-positive radii, counts and resolutions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrArenaNotSet is returned when a query needs arena bounds that were never configured.
	ErrArenaNotSet = errors.New("must configure arena bounds first")
)
