package ver

import (
	"errors"
	"testing"
)

func TestNewPep440Version(t *testing.T) {
	good := []string{
		"0",
		"1.0",
		"1.0.4",
		"v1.2.3",
		"1!2.0",
		"42!11.2.3",
		"1.0a1",
		"1.0.alpha.4",
		"1.0-beta2",
		"1.0rc1",
		"1.0.preview1",
		"1.0-2",
		"1.0.post1",
		"1.0rev2",
		"1.0.r3",
		"1.0.dev1",
		"1.0-dev",
		"1.0+gdeadbeef",
		"1.0+foo-bar.5",
		"11.2.3.a2+gdeadbeef",
		" 1.0.4 ",
	}
	for _, value := range good {
		if _, err := NewPep440Version(value); err != nil {
			t.Errorf("unexpected error parsing version %q: %v", value, err)
		}
	}

	bad := []string{
		"",
		"x",
		"1.x",
		"1.0.y",
		"1..0",
		"1.0.",
		".1.0",
		"1.0+",
		"1.0+foo..bar",
		"!1.0",
		"1!",
		"hello",
	}
	for _, value := range bad {
		if _, err := NewPep440Version(value); err == nil {
			t.Errorf("expected error parsing version %q, got none", value)
		} else if !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("expected ErrInvalidVersion for %q, got: %v", value, err)
		}
	}
}

func TestPep440VersionCanonicalText(t *testing.T) {
	cases := map[string]string{
		"1.0.4":                    "1.0.4",
		"v1.0":                     "1.0",
		"1.0.0":                    "1.0.0", // trailing zeros are kept
		"1.0.ALPHA4":               "1.0a4",
		"1.0-beta2":                "1.0b2",
		"1.0.preview":              "1.0rc0",
		"1.0.c1":                   "1.0rc1",
		"1.0-2":                    "1.0.post2",
		"1.0rev2":                  "1.0.post2",
		"1.0.post":                 "1.0.post0",
		"1.0-dev":                  "1.0.dev0",
		"1.0_dev_1":                "1.0.dev1",
		"0!1.0":                    "1.0",
		"1!2.0":                    "1!2.0",
		"1.0+Foo-Bar.05":           "1.0+foo.bar.5",
		"1.0a1.post2.dev3+local.4": "1.0a1.post2.dev3+local.4",
	}
	for value, expected := range cases {
		v, err := NewPep440Version(value)
		if err != nil {
			t.Errorf("unexpected error parsing version %q: %v", value, err)
			continue
		}
		if v.String() != expected {
			t.Errorf("unexpected canonical text for %q, want %q, got %q", value, expected, v.String())
		}
	}
}

func TestPep440VersionAccessors(t *testing.T) {
	v, err := NewPep440Version("42!1.2.3rc4.post5.dev6+gdeadbeef.7")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if v.Epoch() != 42 {
		t.Errorf("unexpected epoch: %d", v.Epoch())
	}
	if release := v.Release(); len(release) != 3 || release[0] != 1 || release[1] != 2 || release[2] != 3 {
		t.Errorf("unexpected release: %v", release)
	}
	if v.Major() != 1 || v.Minor() != 2 || v.Patch() != 3 {
		t.Errorf("unexpected release accessors: %d.%d.%d", v.Major(), v.Minor(), v.Patch())
	}
	if v.Public() != "42!1.2.3rc4.post5.dev6" {
		t.Errorf("unexpected public text: %q", v.Public())
	}
	if v.Local() != "gdeadbeef.7" {
		t.Errorf("unexpected local label: %q", v.Local())
	}
	if v.IsFinal() {
		t.Error("expected non-final version")
	}
	if v.Value() != "42!1.2.3rc4.post5.dev6+gdeadbeef.7" {
		t.Errorf("unexpected raw value: %q", v.Value())
	}

	// Release returns a copy, the version itself stays immutable.
	v.Release()[0] = 99
	if v.Major() != 1 {
		t.Error("mutating the returned release slice changed the version")
	}
}

func TestPep440VersionCompare(t *testing.T) {
	ordered := []string{
		"0.9",
		"1.0.dev1",
		"1.0.dev2",
		"1.0a1",
		"1.0a1.post1.dev2",
		"1.0a1.post1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+abc",
		"1.0+abc.1",
		"1.0+5",
		"1.0.post1",
		"1.0.1",
		"1.1",
		"1!0.5",
	}
	versions := make([]Pep440Version, len(ordered))
	for i, value := range ordered {
		v, err := NewPep440Version(value)
		if err != nil {
			t.Fatalf("unexpected error parsing version %q: %v", value, err)
		}
		versions[i] = v
	}
	for i := range versions {
		for j := range versions {
			got := versions[i].Compare(versions[j])
			switch {
			case i < j && got >= 0:
				t.Errorf("expected %q < %q, got %d", ordered[i], ordered[j], got)
			case i > j && got <= 0:
				t.Errorf("expected %q > %q, got %d", ordered[i], ordered[j], got)
			case i == j && got != 0:
				t.Errorf("expected %q == %q, got %d", ordered[i], ordered[j], got)
			}
		}
	}
}

func TestPep440VersionCompareEquivalents(t *testing.T) {
	pairs := [][2]string{
		{"1.0", "1.0.0"},
		{"1", "1.0.0.0"},
		{"0!1.0", "1.0"},
		{"1.0alpha1", "1.0a1"},
		{"1.0-1", "1.0.post1"},
		{"1.0+foo-bar", "1.0+foo.bar"},
	}
	for _, pair := range pairs {
		a, err := NewPep440Version(pair[0])
		if err != nil {
			t.Fatalf("unexpected error parsing version %q: %v", pair[0], err)
		}
		b, err := NewPep440Version(pair[1])
		if err != nil {
			t.Fatalf("unexpected error parsing version %q: %v", pair[1], err)
		}
		if a.Compare(b) != 0 {
			t.Errorf("expected %q == %q", pair[0], pair[1])
		}
	}
}

func TestReplaceFields(t *testing.T) {
	original, err := NewPep440Version("1.0.4.dev1+gdeadbeef")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	replaced, err := ReplaceFields(original, VersionFields{Epoch: intp(5)})
	if err != nil {
		t.Fatalf("unexpected replace error: %v", err)
	}
	if replaced.String() != "5!1.0.4.dev1+gdeadbeef" {
		t.Errorf("unexpected epoch replacement result: %q", replaced.String())
	}

	replaced, err = ReplaceFields(original, VersionFields{Release: []int{1, 0, 4, 0}})
	if err != nil {
		t.Fatalf("unexpected replace error: %v", err)
	}
	if replaced.String() != "1.0.4.0.dev1+gdeadbeef" {
		t.Errorf("unexpected release replacement result: %q", replaced.String())
	}

	// The input version is never mutated.
	if original.String() != "1.0.4.dev1+gdeadbeef" || original.Epoch() != 0 {
		t.Errorf("ReplaceFields mutated its input: %q", original.String())
	}
}
