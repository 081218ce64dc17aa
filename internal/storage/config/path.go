package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
)

var (
	ErrPathEmpty     = errors.New("config path cannot be empty")
	ErrPathRelative  = errors.New("config path must be absolute")
	ErrPathTraversal = errors.New("config path contains invalid traversal")
	ErrPathMissing   = errors.New("config file does not exist")
	ErrPathIsDir     = errors.New("config path is a directory, not a file")
	ErrPathNotYAML   = errors.New("config file must have .yaml or .yml extension")
)

var yamlExtensions = []string{".yaml", ".yml"}

// ParseConfigPath checks a games file named on the command line: an absolute,
// traversal-free path to an existing .yaml/.yml file. It returns the cleaned path.
func ParseConfigPath(files fsys.FS, path string) (string, error) {
	switch {
	case path == "":
		return "", ErrPathEmpty
	case !filepath.IsAbs(path):
		return "", ErrPathRelative
	case strings.Contains(path, ".."):
		return "", ErrPathTraversal
	}

	info, err := files.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrPathMissing
	}
	if err != nil {
		return "", err
	}
	if info.IsDir {
		return "", ErrPathIsDir
	}

	if !slices.Contains(yamlExtensions, strings.ToLower(filepath.Ext(path))) {
		return "", ErrPathNotYAML
	}
	return filepath.Clean(path), nil
}
