package ver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Semver specifier grammar and parsing implementation.

A specifier is '[EPOCH!][OPERATOR]VERSION' where the operator is '^', '~',
'*' or absent and the version body is either a full PEP-440 version or a
placeholder pattern. The three legality rules the grammar enforces:

  1. '*' stands alone: no epoch before it, nothing after it.
  2. '^', '~' and the empty operator take a full version body.
  3. A placeholder body ('1.x') is only legal without an operator, and
     admits no pre/post/dev/local suffix.
*/

// semverConfig is used to store the specifier parser configuration.
type semverConfig struct {
	specifierRgx         string         // specifier grammar regexp (e.g. '1!^2.0.0' or '1.x')
	specifierRgxCompiled *regexp.Regexp // Compiled specifier regexp
	groups               map[string]int // Named group indexes of the compiled regexp
}

// semverCfg is a global specifier parser configuration.
var semverCfg semverConfig

// Specifier parser config initialization and expressions compiling.
//
// The version body alternation is ordered: the full-version alternative is
// preferred, the placeholder alternative only matches bodies the first one
// cannot (a wildcard segment), and the empty alternative admits the bare
// '*' operator. Go's regexp engine has no lookarounds, so the epoch and
// operator legality rules are enforced after the match in NewSemverSpecifier.
func init() {
	semverCfg.specifierRgx = `(?:(?P<epoch>[0-9]+)!)?` +
		`(?P<operator>\^|~|\*|)` +
		`(?P<version>` +
		`(?:` +
		`(?P<final>(?:[0-9]+\.){0,2}[0-9]+)` +
		`(?P<prerelease>[-_.]?(?:a|b|c|rc|alpha|beta|pre|preview)[-_.]?[0-9]*)?` +
		`(?P<postrelease>(?:-[0-9]+)|(?:[-_.]?(?:post|rev|r)[-_.]?[0-9]*))?` +
		`(?P<devrelease>(?:[-_.]?dev[-_.]?[0-9]*)?(?:\+[a-z0-9]+(?:[-_.][a-z0-9]+)*)?)` +
		`)|(?P<placeholder>(?:(?:[0-9]+|x)\.){0,2}(?:[0-9]+|x))|` +
		`)`
	semverCfg.specifierRgxCompiled = regexp.MustCompile(`(?i)^\s*` + semverCfg.specifierRgx + `\s*$`)

	semverCfg.groups = make(map[string]int)
	for i, name := range semverCfg.specifierRgxCompiled.SubexpNames() {
		if name != "" {
			semverCfg.groups[name] = i
		}
	}
}

// SemverSpecifier represents one parsed version-range specifier.
// Instances are immutable; construction either fully succeeds or fails
// with ErrInvalidSpecifier.
type SemverSpecifier struct {
	raw      string
	operator string
	version  string // version body with the epoch prefix encoded
	selector VersionSelector
}

// NewSemverSpecifier parses specifier text (e.g. '^1.2.3', '1!~2.0', '1.x',
// '*') and constructs a ready-to-use SemverSpecifier instance.
func NewSemverSpecifier(spec string) (*SemverSpecifier, error) {
	matches := semverCfg.specifierRgxCompiled.FindStringSubmatch(spec)
	if matches == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
	}
	group := func(name string) string { return matches[semverCfg.groups[name]] }

	var (
		epoch       = group("epoch")
		operator    = group("operator")
		version     = group("version")
		placeholder = group("placeholder")
		selector    VersionSelector
	)

	switch {
	case operator == "*":
		// Nothing may follow '*' and no epoch may precede it.
		if epoch != "" || version != "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
		}
		selector = AnySelector{}

	case placeholder != "":
		// Placeholders are only reachable without an operator.
		if operator != "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
		}
		var parsedEpoch *int
		if epoch != "" {
			n, err := strconv.Atoi(epoch)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
			}
			parsedEpoch = &n
		}
		sel, err := NewPlaceholderSelector(parsedEpoch, strings.ToLower(placeholder))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
		}
		selector = sel

	default:
		if version == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
		}
		// The epoch is placed before the operator in specifier text but is
		// carried inside the version value.
		if epoch != "" {
			version = epoch + "!" + version
		}
		parsed, err := NewPep440Version(version)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifier, spec)
		}
		selector = NewRangeSelector(RangeMode(operator), parsed)
	}

	if epoch != "" && placeholder != "" {
		version = epoch + "!" + version
	}

	return &SemverSpecifier{
		raw:      spec,
		operator: operator,
		version:  version,
		selector: selector,
	}, nil
}

// Value method returns original unmodified raw value of the specifier.
func (s *SemverSpecifier) Value() string {
	return s.raw
}

// Spec method returns the specifier as an (operator, version) pair, with
// the epoch encoded in the version element.
func (s *SemverSpecifier) Spec() (operator string, version string) {
	return s.operator, s.version
}

// VersionSelector method returns the selector the specifier parsed into.
func (s *SemverSpecifier) VersionSelector() VersionSelector {
	return s.selector
}

// CanonicalSpec method returns the canonical specifier text, folding
// equivalent spellings together: '1', '1.x' and '1.x.x' all yield '^1.0.0'.
func (s *SemverSpecifier) CanonicalSpec() string {
	return s.selector.Canonical().String()
}

// String method renders the specifier back to text.
func (s *SemverSpecifier) String() string {
	return s.selector.String()
}
