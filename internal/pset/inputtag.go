// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines InputTag, the reference from a parameter to a product of
// another declaration.

package pset

import (
	"fmt"
	"regexp"
	"strings"
)

// labelRegex matches module labels and branch names accepted by the host.
var labelRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// InputTag identifies a named output of a producer: the producer's module
// label, the branch (product instance) label and optionally the process that
// produced it.
type InputTag struct {
	Producer string
	Branch   string
	Process  string
}

// NewInputTag builds a validated InputTag from a producer and branch label.
func NewInputTag(producer, branch string) (InputTag, error) {
	return newInputTag(producer, branch, "")
}

// NewInputTagWithProcess builds a validated InputTag that pins the producing
// process.
func NewInputTagWithProcess(producer, branch, process string) (InputTag, error) {
	return newInputTag(producer, branch, process)
}

// MustInputTag is like NewInputTag but panics on invalid input. It is meant
// for package-level configuration literals.
func MustInputTag(producer, branch string) InputTag {
	tag, err := NewInputTag(producer, branch)
	if err != nil {
		panic(err)
	}
	return tag
}

func newInputTag(producer, branch, process string) (InputTag, error) {
	if !labelRegex.MatchString(producer) {
		return InputTag{}, fmt.Errorf("%w: producer label %q", ErrInvalidInputTag, producer)
	}
	if branch != "" && !labelRegex.MatchString(branch) {
		return InputTag{}, fmt.Errorf("%w: branch label %q", ErrInvalidInputTag, branch)
	}
	if process != "" {
		if branch == "" {
			return InputTag{}, fmt.Errorf("%w: process %q given without branch", ErrInvalidInputTag, process)
		}
		if !labelRegex.MatchString(process) {
			return InputTag{}, fmt.Errorf("%w: process name %q", ErrInvalidInputTag, process)
		}
	}
	return InputTag{Producer: producer, Branch: branch, Process: process}, nil
}

// ParseInputTag parses the colon separated form "producer[:branch[:process]]".
func ParseInputTag(raw string) (InputTag, error) {
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		return newInputTag(parts[0], "", "")
	case 2:
		return newInputTag(parts[0], parts[1], "")
	case 3:
		return newInputTag(parts[0], parts[1], parts[2])
	default:
		return InputTag{}, fmt.Errorf("%w: %q has too many components", ErrInvalidInputTag, raw)
	}
}

// String renders the tag in the colon separated form accepted by ParseInputTag.
func (t InputTag) String() string {
	switch {
	case t.Process != "":
		return t.Producer + ":" + t.Branch + ":" + t.Process
	case t.Branch != "":
		return t.Producer + ":" + t.Branch
	default:
		return t.Producer
	}
}
