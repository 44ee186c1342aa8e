/*
Package semspec provides convinient api for semver specifier parsing and
canonicalization over whole dependency lists.
*/
package semspec

import (
	"context"
	"fmt"

	"github.com/dephub/semspec-core/providers/fetchers"
	"github.com/dephub/semspec-core/providers/parsers"
	"github.com/dephub/semspec-core/providers/ver"
)

// Constraint represents one dependency/constraint.
type Constraint struct {
	Name string
	Spec string
}

// Requirement represents locked dependency.
type Requirement struct {
	Name    string
	Version string
}

// DependencySource represents abstraction over dependency list files and
// provides convinient interface to fetch packages information.
type DependencySource interface {
	// Requirements returns list of project's locked dependencies versions (if any).
	Requirements(ctx context.Context) ([]Requirement, error)
	// Constraints returns list of project's dependencies constraints.
	Constraints(ctx context.Context) ([]Constraint, error)
}

// NewMemorySource constructs a DependencySource over in-memory files.
func NewMemorySource(files map[string][]byte) DependencySource {
	return &fetcherSource{fetcher: fetchers.ByteMapFetcher{Files: files}}
}

// NewDirSource constructs a DependencySource over a local directory root.
func NewDirSource(root string) DependencySource {
	return &fetcherSource{fetcher: fetchers.NewDirFetcher(root)}
}

// fetcherSource adapts any FileFetcher into a DependencySource.
type fetcherSource struct {
	fetcher fetchers.FileFetcher
}

// Requirements returns list of project's locked dependencies versions (if any).
func (fs fetcherSource) Requirements(ctx context.Context) ([]Requirement, error) {
	reqs, err := parsers.NewDepsParser(fs.fetcher, "").Requirements(ctx)
	if err != nil {
		return nil, err
	}
	result := []Requirement{}
	for _, req := range reqs {
		result = append(result, Requirement{Name: req.Name, Version: req.Version.String()})
	}
	return result, nil
}

// Constraints returns list of project's dependencies constraints.
func (fs fetcherSource) Constraints(ctx context.Context) ([]Constraint, error) {
	csts, err := parsers.NewDepsParser(fs.fetcher, "").Constraints(ctx)
	if err != nil {
		return nil, err
	}
	result := []Constraint{}
	for _, cst := range csts {
		result = append(result, Constraint{Name: cst.Name, Spec: cst.Spec.Value()})
	}
	return result, nil
}

// CanonicalConstraints returns the source constraints with every specifier
// replaced by its canonical form, so that equivalent declarations ('1',
// '1.x', '^1.0.0') collapse into one spelling.
func CanonicalConstraints(ctx context.Context, src DependencySource) ([]Constraint, error) {
	csts, err := src.Constraints(ctx)
	if err != nil {
		return nil, err
	}
	result := []Constraint{}
	for _, cst := range csts {
		spec, err := ver.NewSemverSpecifier(cst.Spec)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", cst.Name, err)
		}
		result = append(result, Constraint{Name: cst.Name, Spec: spec.CanonicalSpec()})
	}
	return result, nil
}
