package ver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
PEP-440 compatible version values ('epoch!release.pre.post.dev+local')
semantic parsing implementation.
*/

// pep440Config is used to store the version parser configuration.
type pep440Config struct {
	versionRgx         string         // PEP-440 version regexp (e.g. '1!2.0.3rc1+build.4')
	versionRgxCompiled *regexp.Regexp // Compiled version regexp
	groups             map[string]int // Named group indexes of the compiled regexp
}

// pep440Cfg is a global version parser configuration.
var pep440Cfg pep440Config

// Version parser config initialization and expressions compiling.
func init() {
	pep440Cfg.versionRgx = `v?` +
		`(?:(?P<epoch>[0-9]+)!)?` +
		`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
		`(?:[-_.]?(?P<prel>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<pren>[0-9]+)?)?` +
		`(?:(?:-(?P<postn1>[0-9]+))|(?:[-_.]?(?P<postl>post|rev|r)[-_.]?(?P<postn2>[0-9]+)?))?` +
		`(?:[-_.]?(?P<devl>dev)[-_.]?(?P<devn>[0-9]+)?)?` +
		`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?`
	pep440Cfg.versionRgxCompiled = regexp.MustCompile(`(?i)^\s*` + pep440Cfg.versionRgx + `\s*$`)

	pep440Cfg.groups = make(map[string]int)
	for i, name := range pep440Cfg.versionRgxCompiled.SubexpNames() {
		if name != "" {
			pep440Cfg.groups[name] = i
		}
	}
}

// letterNumber is a normalized letter+number version suffix (e.g. 'rc1').
type letterNumber struct {
	letter string
	number int
}

// localSegment is one dot-separated segment of a local version label.
// Numeric segments order numerically and above textual ones.
type localSegment struct {
	numeric bool
	number  int
	text    string
}

func (s localSegment) String() string {
	if s.numeric {
		return strconv.Itoa(s.number)
	}
	return s.text
}

// Pep440Version represents one PEP-440 compatible version value.
// The zero value is not a valid version, use NewPep440Version.
type Pep440Version struct {
	value   string
	epoch   int
	release []int
	pre     *letterNumber
	post    *int
	dev     *int
	local   []localSegment
}

// preAliases map spelling variants to the canonical pre-release letters.
var preAliases = map[string]string{
	"a": "a", "alpha": "a",
	"b": "b", "beta": "b",
	"rc": "rc", "c": "rc", "pre": "rc", "preview": "rc",
}

// NewPep440Version constructs ready-to-use Pep440Version instance.
func NewPep440Version(value string) (Pep440Version, error) {
	matches := pep440Cfg.versionRgxCompiled.FindStringSubmatch(value)
	if matches == nil {
		return Pep440Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, value)
	}
	group := func(name string) string { return matches[pep440Cfg.groups[name]] }

	sv := Pep440Version{value: value}

	var err error
	if epoch := group("epoch"); epoch != "" {
		if sv.epoch, err = strconv.Atoi(epoch); err != nil {
			return Pep440Version{}, fmt.Errorf("%w: epoch segment: %q", ErrInvalidVersion, value)
		}
	}

	for _, seg := range strings.Split(group("release"), ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return Pep440Version{}, fmt.Errorf("%w: release segment: %q", ErrInvalidVersion, value)
		}
		sv.release = append(sv.release, n)
	}

	if letter := strings.ToLower(group("prel")); letter != "" {
		pre := letterNumber{letter: preAliases[letter]}
		if num := group("pren"); num != "" {
			if pre.number, err = strconv.Atoi(num); err != nil {
				return Pep440Version{}, fmt.Errorf("%w: pre-release segment: %q", ErrInvalidVersion, value)
			}
		}
		sv.pre = &pre
	}

	// '-N' shorthand and the 'post/rev/r' spellings both normalize to 'post'.
	if num := group("postn1") + group("postn2"); group("postl") != "" || num != "" {
		post := 0
		if num != "" {
			if post, err = strconv.Atoi(num); err != nil {
				return Pep440Version{}, fmt.Errorf("%w: post-release segment: %q", ErrInvalidVersion, value)
			}
		}
		sv.post = &post
	}

	if group("devl") != "" {
		dev := 0
		if num := group("devn"); num != "" {
			if dev, err = strconv.Atoi(num); err != nil {
				return Pep440Version{}, fmt.Errorf("%w: dev-release segment: %q", ErrInvalidVersion, value)
			}
		}
		sv.dev = &dev
	}

	if local := strings.ToLower(group("local")); local != "" {
		for _, part := range strings.FieldsFunc(local, func(r rune) bool {
			return r == '-' || r == '_' || r == '.'
		}) {
			if n, err := strconv.Atoi(part); err == nil {
				sv.local = append(sv.local, localSegment{numeric: true, number: n})
			} else {
				sv.local = append(sv.local, localSegment{text: part})
			}
		}
	}

	return sv, nil
}

// Value method returns original unmodified raw value of the version.
func (cv Pep440Version) Value() string {
	return cv.value
}

// Epoch method returns the version era (e.g. '?!1.0.0', defaults to 0).
func (cv Pep440Version) Epoch() int {
	return cv.epoch
}

// Release method returns a copy of the numeric release segments (e.g. '1.2.3').
func (cv Pep440Version) Release() []int {
	return append([]int(nil), cv.release...)
}

// Local method returns the local version label without the '+' separator,
// or an empty string when there is none.
func (cv Pep440Version) Local() string {
	parts := make([]string, len(cv.local))
	for i, seg := range cv.local {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}

// Public method returns the canonical public version text, i.e. the
// canonical form without the local label.
func (cv Pep440Version) Public() string {
	var b strings.Builder
	cv.writePublic(&b)
	return b.String()
}

// String method returns the canonical version text. Release segments are
// rendered as parsed, trailing zeros are kept.
func (cv Pep440Version) String() string {
	var b strings.Builder
	cv.writePublic(&b)
	if len(cv.local) != 0 {
		b.WriteByte('+')
		b.WriteString(cv.Local())
	}
	return b.String()
}

func (cv Pep440Version) writePublic(b *strings.Builder) {
	if cv.epoch != 0 {
		fmt.Fprintf(b, "%d!", cv.epoch)
	}
	for i, seg := range cv.release {
		if i != 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(seg))
	}
	if cv.pre != nil {
		fmt.Fprintf(b, "%s%d", cv.pre.letter, cv.pre.number)
	}
	if cv.post != nil {
		fmt.Fprintf(b, ".post%d", *cv.post)
	}
	if cv.dev != nil {
		fmt.Fprintf(b, ".dev%d", *cv.dev)
	}
}

// releaseSegment returns the n-th release segment, missing segments read as 0.
func (cv Pep440Version) releaseSegment(n int) int {
	if n < len(cv.release) {
		return cv.release[n]
	}
	return 0
}

// Major method returns integer value of the major version segment (e.g. '?.0.0')
func (cv Pep440Version) Major() int {
	return cv.releaseSegment(0)
}

// Minor method returns integer value of the minor version segment (e.g. '0.?.0')
func (cv Pep440Version) Minor() int {
	return cv.releaseSegment(1)
}

// Patch method returns integer value of the patch version segment (e.g. '0.0.?')
func (cv Pep440Version) Patch() int {
	return cv.releaseSegment(2)
}

// IsFinal method reports whether the version carries no pre, post, dev or
// local suffix.
func (cv Pep440Version) IsFinal() bool {
	return cv.pre == nil && cv.post == nil && cv.dev == nil && len(cv.local) == 0
}

// Compare method implements the PEP-440 total ordering. It returns a value
// below, equal to or above zero when cv orders before, equal to or after
// other.
func (cv Pep440Version) Compare(other Pep440Version) int {
	if cv.epoch != other.epoch {
		return cv.epoch - other.epoch
	}
	for i := 0; i < len(cv.release) || i < len(other.release); i++ {
		if d := cv.releaseSegment(i) - other.releaseSegment(i); d != 0 {
			return d
		}
	}
	if d := cv.comparePre(other); d != 0 {
		return d
	}
	if d := compareOptional(cv.post, other.post, -1); d != 0 {
		return d
	}
	if d := compareOptional(cv.dev, other.dev, 1); d != 0 {
		return d
	}
	return compareLocal(cv.local, other.local)
}

// comparePre orders the pre-release slot: a bare dev release sorts before
// any pre-release, a final release sorts after all of them.
func (cv Pep440Version) comparePre(other Pep440Version) int {
	rank := func(v Pep440Version) int {
		switch {
		case v.pre == nil && v.post == nil && v.dev != nil:
			return -1
		case v.pre == nil:
			return 1
		}
		return 0
	}
	a, b := rank(cv), rank(other)
	if a != b {
		return a - b
	}
	if a != 0 { // neither has a pre-release segment
		return 0
	}
	if cv.pre.letter != other.pre.letter {
		// Canonical letters happen to order correctly as text: a < b < rc.
		return strings.Compare(cv.pre.letter, other.pre.letter)
	}
	return cv.pre.number - other.pre.number
}

// compareOptional orders optional numeric suffixes, 'missing' ranks as the
// given extreme: -1 sorts absent values first (post), 1 last (dev).
func compareOptional(a, b *int, missing int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return missing
	case b == nil:
		return -missing
	}
	return *a - *b
}

func compareLocal(a, b []localSegment) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		switch {
		case i >= len(a):
			return -1
		case i >= len(b):
			return 1
		}
		if d := compareLocalSegment(a[i], b[i]); d != 0 {
			return d
		}
	}
	return 0
}

func compareLocalSegment(a, b localSegment) int {
	switch {
	case a.numeric && b.numeric:
		return a.number - b.number
	case a.numeric:
		return 1
	case b.numeric:
		return -1
	}
	return strings.Compare(a.text, b.text)
}

// VersionFields lists the Pep440Version fields ReplaceFields can override.
// Nil fields are left untouched.
type VersionFields struct {
	Epoch   *int
	Release []int
}

// ReplaceFields returns a copy of the version with the given fields
// overridden and every other field preserved. The result is re-parsed from
// its textual form so it always is a well-formed version value; the input
// is never mutated.
func ReplaceFields(version Pep440Version, fields VersionFields) (Pep440Version, error) {
	next := version
	if fields.Epoch != nil {
		next.epoch = *fields.Epoch
	}
	if fields.Release != nil {
		next.release = append([]int(nil), fields.Release...)
	}
	return NewPep440Version(next.String())
}

func intp(n int) *int {
	return &n
}
