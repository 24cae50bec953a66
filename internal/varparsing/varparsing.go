// Package varparsing parses the key=value options of the test harness.
//
// Exactly two options exist: inputMC, the path of a file listing the input
// samples, and Events, the number of events to process. Anything else is
// rejected so that a typo never silently falls back to a default.
package varparsing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default values used when an option is not given.
const (
	DefaultInputMC = "L1Trigger/TrackerTFP/test/MCsamples/1110/RelVal/TTbar/PU200.txt"
	DefaultEvents  = 100
)

var (
	// ErrUnknownOption is returned for keys other than inputMC and Events.
	ErrUnknownOption = errors.New("unknown option")
	// ErrInvalidOption is returned for malformed or repeated options.
	ErrInvalidOption = errors.New("invalid option")
)

var keyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// Options holds the parsed harness options.
type Options struct {
	InputMC string
	Events  int
}

// Defaults returns the options used when no argument is given.
func Defaults() Options {
	return Options{InputMC: DefaultInputMC, Events: DefaultEvents}
}

// IsOption reports whether arg has the key=value shape of a harness option.
// It does not check that the key is known.
func IsOption(arg string) bool {
	return keyRegex.MatchString(arg)
}

// Parse applies key=value arguments on top of the defaults. Each option may
// be given at most once.
func Parse(args []string) (Options, error) {
	opts := Defaults()
	seen := make(map[string]bool, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || !IsOption(arg) {
			return Options{}, fmt.Errorf("%w: %q is not of the form key=value", ErrInvalidOption, arg)
		}
		if seen[key] {
			return Options{}, fmt.Errorf("%w: %s given more than once", ErrInvalidOption, key)
		}
		seen[key] = true

		switch key {
		case "inputMC":
			if value == "" {
				return Options{}, fmt.Errorf("%w: inputMC must not be empty", ErrInvalidOption)
			}
			opts.InputMC = value
		case "Events":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Options{}, fmt.Errorf("%w: Events=%q is not an integer", ErrInvalidOption, value)
			}
			if n < -1 {
				return Options{}, fmt.Errorf("%w: Events must be -1 (all) or non-negative, got %d", ErrInvalidOption, n)
			}
			opts.Events = n
		default:
			return Options{}, fmt.Errorf("%w: %q (known: inputMC, Events)", ErrUnknownOption, key)
		}
	}
	return opts, nil
}
