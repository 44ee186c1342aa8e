package semspec

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dephub/semspec-core/providers/parsers"
	"github.com/dephub/semspec-core/providers/ver"
)

var sourceMockFileStorage = map[string][]byte{
	"deps.txt": []byte(`# project dependencies
requests ^2.28.0
flask 2.0
legacy 1!1.x
anything
`),
	"deps.txt.lock": []byte(`requests 2.28.1
flask 2.0.3
legacy 1!1.2.0
anything 0.4.1
`),
}

func TestMemorySourceConstraints(t *testing.T) {
	source := NewMemorySource(sourceMockFileStorage)

	constraints, err := source.Constraints(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []Constraint{
		{Name: "requests", Spec: "^2.28.0"},
		{Name: "flask", Spec: "2.0"},
		{Name: "legacy", Spec: "1!1.x"},
		{Name: "anything", Spec: "*"},
	}, constraints)
}

func TestMemorySourceRequirements(t *testing.T) {
	source := NewMemorySource(sourceMockFileStorage)

	requirements, err := source.Requirements(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []Requirement{
		{Name: "requests", Version: "2.28.1"},
		{Name: "flask", Version: "2.0.3"},
		{Name: "legacy", Version: "1!1.2.0"},
		{Name: "anything", Version: "0.4.1"},
	}, requirements)
}

func TestCanonicalConstraints(t *testing.T) {
	source := NewMemorySource(sourceMockFileStorage)

	constraints, err := CanonicalConstraints(context.Background(), source)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Constraint{
		{Name: "requests", Spec: "^2.28.0"},
		{Name: "flask", Spec: "~2.0.0"},
		{Name: "legacy", Spec: "1!^1.0.0"},
		{Name: "anything", Spec: "*"},
	}, constraints)
}

func TestCanonicalConstraints_Errors(t *testing.T) {
	source := NewMemorySource(map[string][]byte{
		"deps.txt": []byte("broken ~1.x.x\n"),
	})

	_, err := CanonicalConstraints(context.Background(), source)
	assert.ErrorIs(t, err, ver.ErrInvalidSpecifier)
}

func TestDirSource(t *testing.T) {
	dir, err := ioutil.TempDir("", "semspec")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(
		filepath.Join(dir, "deps.txt"), sourceMockFileStorage["deps.txt"], 0600))

	source := NewDirSource(dir)

	constraints, err := source.Constraints(context.Background())
	require.NoError(t, err)
	assert.Len(t, constraints, 4)

	// No lock list in the directory.
	requirements, err := source.Requirements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, requirements)
}

func TestMemorySourceMissingFile(t *testing.T) {
	source := NewMemorySource(map[string][]byte{})

	_, err := source.Constraints(context.Background())
	assert.ErrorIs(t, err, parsers.ErrFileNotFound)
}
