/*
Package parsers provides parsers for dependency declaration files.

Goals:
  - Parsing a dependency list into validated semver specifiers
  - Parsing a lock list into fixed version values
*/
package parsers

import (
	"context"
	"errors"

	"github.com/dephub/semspec-core/providers/ver"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

// DependencyParser represents basic interface for parsers in this package.
type DependencyParser interface {
	// Requirements have to return list of locked dependencies (if not possible - return nills)
	Requirements(context.Context) ([]Requirement, error)
	// Constraints have to return list of dependencies with parsed constraints.
	// These dependencies do not represent locked ones.
	Constraints(context.Context) ([]Constraint, error)
}

// Constraint represents one dependency/constraint.
type Constraint struct {
	Name string
	Spec *ver.SemverSpecifier
}

// Requirement represents locked dependency.
type Requirement struct {
	Name    string
	Version ver.Pep440Version
}
