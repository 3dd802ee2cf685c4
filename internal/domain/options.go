package domain

import (
	"fmt"
	"strings"
)

// Order controls the order in which directory entries are visited
type Order string

const (
	// OrderFilesystem visits entries in whatever order the OS returns them
	OrderFilesystem Order = "filesystem"
	// OrderLexical sorts entries by name within each directory
	OrderLexical Order = "lexical"
)

// PathMode controls how the root-relative path of a file is computed
type PathMode string

const (
	// PathModeLiteral removes every occurrence of the root string from the full path
	PathModeLiteral PathMode = "literal"
	// PathModeRelative computes a true relative path from the root
	PathModeRelative PathMode = "relative"
)

// ParseOrder parses a traversal order name
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderFilesystem, OrderLexical:
		return o, nil
	case "":
		return OrderFilesystem, nil
	default:
		return "", fmt.Errorf("%w: %q (use filesystem or lexical)", ErrInvalidOrder, s)
	}
}

// ParsePathMode parses a relative path mode name
func ParsePathMode(s string) (PathMode, error) {
	switch m := PathMode(strings.ToLower(strings.TrimSpace(s))); m {
	case PathModeLiteral, PathModeRelative:
		return m, nil
	case "":
		return PathModeLiteral, nil
	default:
		return "", fmt.Errorf("%w: %q (use literal or relative)", ErrInvalidPathMode, s)
	}
}

// CommonOptions contains switches shared by the CLI and the generator
type CommonOptions struct {
	DryRun   bool
	Atomic   bool
	Progress bool
}
