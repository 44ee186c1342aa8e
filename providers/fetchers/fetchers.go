/*
Package fetchers provides file fetching functions for in-memory and local
directory sources.
*/
package fetchers

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

var (
	ErrFileNotFound = errors.New("dependency file not found")
)

// FileFetcher interface defines fetchers methods.
type FileFetcher interface {
	FileContent(ctx context.Context, path string) ([]byte, error)
}

// ByteMapFetcher is used for storing file contents in memory (usefull for debugging/testing or for building custom repositories logic)
type ByteMapFetcher struct {
	Files map[string][]byte
}

// FileContent retrieves (if found) []byte contents from it's map using path argument as a key.
func (sf ByteMapFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	v, ok := sf.Files[path]
	if !ok {
		return nil, ErrFileNotFound
	}
	return v, nil
}

// DirFetcher fetches files from a local directory root.
// Path arguments are resolved relative to Root.
type DirFetcher struct {
	Root string
}

// NewDirFetcher constructs DirFetcher for the specified directory.
func NewDirFetcher(root string) FileFetcher {
	return DirFetcher{Root: root}
}

// FileContent reads the specified file from the configured directory.
func (df DirFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	b, err := ioutil.ReadFile(filepath.Join(df.Root, path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("unable to read '%s' file: %w", path, err)
	}
	return b, nil
}
