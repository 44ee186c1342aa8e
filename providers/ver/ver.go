/*
Package ver provides semantic parsing for semver-style version specifiers
and for the PEP-440 compatible version values they constrain.

A specifier is a textual version-range constraint such as '^1.2.3', '~1.0',
'1.x' or '*'. Parsing a specifier yields a VersionSelector describing the
kind of constraint it expresses, and every selector can be reduced to one
canonical form so that equivalent spellings ('1', '1.x', '^1.0.0') compare
equal.

Deciding whether a concrete version satisfies a specifier is out of scope
for this package and is left to the caller.
*/
package ver

import "errors"

var (
	// ErrInvalidSpecifier is returned for any specifier text that does not
	// match the specifier grammar, wrapped with the offending input.
	ErrInvalidSpecifier = errors.New("invalid specifier")

	// ErrInvalidVersion is returned for version text that does not match
	// the version scheme, wrapped with the offending input.
	ErrInvalidVersion = errors.New("invalid version")
)
