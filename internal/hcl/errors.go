package hcl

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrUnknownPSet is returned when extends names a record that is not defined.
	ErrUnknownPSet = errors.New("unknown pset")
	// ErrDuplicatePSet is returned when two top-level records share a name.
	ErrDuplicatePSet = errors.New("duplicate pset")
	// ErrExtendsCycle is returned when records extend each other in a loop.
	ErrExtendsCycle = errors.New("extends cycle")
	// ErrReservedKey is returned when a record that supports extends uses the
	// reserved key as a parameter.
	ErrReservedKey = errors.New("reserved key")
	// ErrSyntax is returned for structurally invalid configuration.
	ErrSyntax = errors.New("invalid configuration")
)

// rangeErr prefixes err with a source location.
func rangeErr(rng hcl.Range, err error) error {
	return fmt.Errorf("%s: %w", rng.String(), err)
}

func syntaxErr(rng hcl.Range, format string, args ...any) error {
	return rangeErr(rng, fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)))
}
