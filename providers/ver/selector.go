package ver

import (
	"fmt"
	"strconv"
	"strings"
)

/*
Version selectors describe what kind of constraint a specifier expresses.
The closed set of variants is AnySelector (matches everything),
PlaceholderSelector (wildcard patterns like '1.x') and RangeSelector
(an operator-qualified exact version). Selectors are immutable values;
Canonical derives a new selector and never fails.
*/

// RangeMode is the range selector operator glyph.
type RangeMode string

// Supported range selector modes.
const (
	// RangeMinor keeps the constraint within the same minor series ('^').
	RangeMinor = RangeMode("^")
	// RangePatch keeps the constraint within the same patch series ('~').
	RangePatch = RangeMode("~")
	// RangeExact pins the constraint to one version (no operator).
	RangeExact = RangeMode("")
)

// VersionSelector represents one parsed specifier constraint.
type VersionSelector interface {
	// Canonical returns the canonical representation of the selector,
	// possibly of a different variant (e.g. '1.x' canonicalizes to '^1.0.0').
	// Canonical is total and idempotent; shapes without a defined
	// simplification canonicalize to themselves.
	Canonical() VersionSelector
	// Spec returns the selector as an (operator, version) pair. The epoch,
	// when present, is encoded in the version element.
	Spec() (operator string, version string)
	// Equal reports structural equality with another selector.
	Equal(other VersionSelector) bool
	// String renders the selector as specifier text. A nonzero epoch
	// renders ahead of the operator glyph (e.g. '1!^1.0.0').
	String() string
}

// formatEpoch renders the 'N!' version era prefix, empty for era zero.
func formatEpoch(epoch int) string {
	if epoch == 0 {
		return ""
	}
	return strconv.Itoa(epoch) + "!"
}

// AnySelector matches every version ('*').
type AnySelector struct{}

// Canonical returns the selector itself.
func (AnySelector) Canonical() VersionSelector {
	return AnySelector{}
}

// Spec returns the ("*", "") pair.
func (AnySelector) Spec() (string, string) {
	return "*", ""
}

// Equal reports whether other is also an AnySelector.
func (AnySelector) Equal(other VersionSelector) bool {
	_, ok := other.(AnySelector)
	return ok
}

func (AnySelector) String() string {
	return "*"
}

// PlaceholderPart is one segment of a placeholder pattern, either a
// non-negative number or the wildcard marker 'x'.
type PlaceholderPart struct {
	Wild   bool
	Number int
}

func (p PlaceholderPart) String() string {
	if p.Wild {
		return "x"
	}
	return strconv.Itoa(p.Number)
}

// PlaceholderSelector represents patterns like '1.x' or 'x.42.x': one to
// three segments, each a number or the wildcard marker.
type PlaceholderSelector struct {
	epoch    int
	hasEpoch bool
	parts    []PlaceholderPart
}

// NewPlaceholderSelector constructs a PlaceholderSelector from a dotted
// pattern (e.g. '1.x.x'). A nil epoch means the specifier carried no era
// prefix; era zero is kept distinct from an absent one for equality.
func NewPlaceholderSelector(epoch *int, pattern string) (PlaceholderSelector, error) {
	segs := strings.Split(pattern, ".")
	if len(segs) < 1 || len(segs) > 3 {
		return PlaceholderSelector{}, fmt.Errorf("%w: invalid placeholder %q", ErrInvalidSpecifier, pattern)
	}
	parts := make([]PlaceholderPart, len(segs))
	for i, seg := range segs {
		if seg == "x" {
			parts[i] = PlaceholderPart{Wild: true}
			continue
		}
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return PlaceholderSelector{}, fmt.Errorf("%w: invalid placeholder %q", ErrInvalidSpecifier, pattern)
		}
		parts[i] = PlaceholderPart{Number: n}
	}
	sel := PlaceholderSelector{parts: parts}
	if epoch != nil {
		sel.epoch = *epoch
		sel.hasEpoch = true
	}
	return sel, nil
}

// Epoch returns the version era and whether one was present at all.
func (s PlaceholderSelector) Epoch() (int, bool) {
	return s.epoch, s.hasEpoch
}

// Parts returns a copy of the pattern segments.
func (s PlaceholderSelector) Parts() []PlaceholderPart {
	return append([]PlaceholderPart(nil), s.parts...)
}

// Canonical folds trailing-wildcard shapes into range selectors:
// 'x' becomes '*', '1.x' and '1.x.x' become '^1.0.0', '1.0.x' becomes
// '~1.0.0'. Any other shape (wildcard not trailing) has no defined
// simplification and canonicalizes to itself.
func (s PlaceholderSelector) Canonical() VersionSelector {
	parts := s.parts
	if len(parts) == 0 {
		return s
	}
	if len(parts) == 1 && parts[0].Wild {
		return AnySelector{}
	}

	epoch := formatEpoch(s.epoch)
	if !parts[0].Wild {
		if (len(parts) == 2 && parts[1].Wild) ||
			(len(parts) == 3 && parts[1].Wild && parts[2].Wild) {
			version, err := NewPep440Version(fmt.Sprintf("%s%d.0.0", epoch, parts[0].Number))
			if err == nil {
				return RangeSelector{mode: RangeMinor, version: version}
			}
		} else if len(parts) == 3 && !parts[1].Wild && parts[2].Wild {
			version, err := NewPep440Version(fmt.Sprintf("%s%d.%d.0", epoch, parts[0].Number, parts[1].Number))
			if err == nil {
				return RangeSelector{mode: RangePatch, version: version}
			}
		}
	}

	return s
}

// Spec returns the ("", pattern) pair, the epoch prefix included in the
// pattern element.
func (s PlaceholderSelector) Spec() (string, string) {
	return "", s.String()
}

// Equal reports structural equality: same parts and same (possibly absent)
// epoch. An explicit '0!' era is a distinct value from an absent one even
// though both render without a prefix.
func (s PlaceholderSelector) Equal(other VersionSelector) bool {
	o, ok := other.(PlaceholderSelector)
	if !ok || s.epoch != o.epoch || s.hasEpoch != o.hasEpoch || len(s.parts) != len(o.parts) {
		return false
	}
	for i := range s.parts {
		if s.parts[i] != o.parts[i] {
			return false
		}
	}
	return true
}

func (s PlaceholderSelector) String() string {
	segs := make([]string, len(s.parts))
	for i, part := range s.parts {
		segs[i] = part.String()
	}
	return formatEpoch(s.epoch) + strings.Join(segs, ".")
}

// RangeSelector represents an operator-qualified exact version, e.g.
// '^1.0.0', '~1.2.0' or a bare '1.0.4'.
type RangeSelector struct {
	mode    RangeMode
	version Pep440Version
}

// NewRangeSelector constructs a RangeSelector over a parsed version.
func NewRangeSelector(mode RangeMode, version Pep440Version) RangeSelector {
	return RangeSelector{mode: mode, version: version}
}

// Mode returns the range operator mode.
func (s RangeSelector) Mode() RangeMode {
	return s.mode
}

// Version returns the selector's version value.
func (s RangeSelector) Version() Pep440Version {
	return s.version
}

// Canonical promotes under-specified exact selectors ('1' to '^1.0.0',
// '1.0' to '~1.0.0' by zero-padding the release) and otherwise normalizes
// the version text while preserving the mode.
func (s RangeSelector) Canonical() VersionSelector {
	if s.mode == RangeExact {
		if release := s.version.Release(); len(release) == 1 {
			version, err := ReplaceFields(s.version, VersionFields{Release: append(release, 0, 0)})
			if err == nil {
				return RangeSelector{mode: RangeMinor, version: version}
			}
		} else if len(strings.Split(s.version.Public(), ".")) == 2 {
			version, err := ReplaceFields(s.version, VersionFields{Release: append(release, 0)})
			if err == nil {
				return RangeSelector{mode: RangePatch, version: version}
			}
		}
	}

	version, err := NewPep440Version(s.version.String())
	if err != nil {
		return s
	}
	return RangeSelector{mode: s.mode, version: version}
}

// Spec returns the (operator, version) pair, the version element carrying
// the epoch prefix (e.g. ("^", "1!1.0.0")).
func (s RangeSelector) Spec() (string, string) {
	return string(s.mode), s.version.String()
}

// Equal reports whether other is a RangeSelector with the same mode and an
// equally-ordering version.
func (s RangeSelector) Equal(other VersionSelector) bool {
	o, ok := other.(RangeSelector)
	return ok && s.mode == o.mode && s.version.Compare(o.version) == 0
}

// String renders the selector with the epoch ahead of the operator glyph:
// '1!^1.0.0', not '^1!1.0.0'.
func (s RangeSelector) String() string {
	body := s.version
	if body.Epoch() != 0 {
		if stripped, err := ReplaceFields(s.version, VersionFields{Epoch: intp(0)}); err == nil {
			body = stripped
		}
	}
	return formatEpoch(s.version.Epoch()) + string(s.mode) + body.String()
}
