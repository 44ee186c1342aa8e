package parsers

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dephub/semspec-core/providers/fetchers"
	"github.com/dephub/semspec-core/providers/ver"
)

// NewDepsParser constructs a dependency list parser.
// If 'filename' parameter is an empty string - 'deps.txt' will be used
// instead, the lock list is read from the same name with a '.lock' suffix.
func NewDepsParser(fetcher fetchers.FileFetcher, filename string) DependencyParser {
	if filename == "" {
		filename = "deps.txt"
	}
	return &DepsParser{fetcher: fetcher, SourceName: filename, LockName: filename + ".lock"}
}

// DepsParser parses dependency lists of 'name specifier' lines, e.g.:
//
//	# web stack
//	flask ^2.0
//	requests ~2.28.1
//	click
//
// Empty lines and '#' comments are skipped; a dependency without a
// specifier constrains to any version ('*'). The lock list uses the same
// layout with fixed versions instead of specifiers.
type DepsParser struct {
	fetcher fetchers.FileFetcher
	// SourceName is the dependency list filename (e.g. 'deps.txt')
	SourceName string
	// LockName is the lock list filename (e.g. 'deps.txt.lock')
	LockName string
}

// Requirements method returns the locked dependencies, nil values when no
// lock list exists.
func (c DepsParser) Requirements(ctx context.Context) ([]Requirement, error) {
	b, err := c.fetcher.FileContent(ctx, c.LockName)
	if err != nil {
		if err == fetchers.ErrFileNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to fetch lock list from the source: %w", err)
	}

	res := []Requirement{}
	for _, line := range depLines(b) {
		name, value, err := splitDepLine(line)
		if err != nil {
			return nil, err
		}
		if value == "" {
			return nil, fmt.Errorf("locked dependency %q has no version", name)
		}
		version, err := ver.NewPep440Version(value)
		if err != nil {
			return nil, fmt.Errorf("locked dependency %q: %w", name, err)
		}
		res = append(res, Requirement{Name: name, Version: version})
	}

	return res, nil
}

// Constraints method returns the declared dependencies constraints. Every
// constraint is validated through the specifier grammar, one invalid
// specifier fails the whole parse.
func (c DepsParser) Constraints(ctx context.Context) ([]Constraint, error) {
	b, err := c.fetcher.FileContent(ctx, c.SourceName)
	if err != nil {
		if err == fetchers.ErrFileNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("unable to fetch dependencies from the source: %w", err)
	}

	res := []Constraint{}
	for _, line := range depLines(b) {
		name, value, err := splitDepLine(line)
		if err != nil {
			return nil, err
		}
		if value == "" {
			value = "*" // default constraint
		}
		spec, err := ver.NewSemverSpecifier(value)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", name, err)
		}
		res = append(res, Constraint{Name: name, Spec: spec})
	}

	return res, nil
}

// depLines returns the meaningful lines of a dependency list: comments
// stripped, empty lines skipped.
func depLines(fileContent []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(fileContent))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i != -1 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitDepLine splits one 'name [value]' dependency line.
func splitDepLine(line string) (name, value string, err error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return fields[0], "", nil
	case 2:
		return fields[0], fields[1], nil
	}
	return "", "", fmt.Errorf("invalid dependency line %q", line)
}
