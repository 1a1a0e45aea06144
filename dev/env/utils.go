package devenv

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const moduleName = "milesearch-backend"

// StatePrefix marks a path as relative to the workspace's dev/.state
// directory.
const StatePrefix = "<dev_state>"

var modName = regexp.MustCompile(`(?m)^module +([\w\-_./]+)\s*$`)

func isWorkspaceRoot(currentdir string) bool {
	mod, err := os.ReadFile(filepath.Join(currentdir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == moduleName
}

// GetWorkspaceRoot walks up from the cwd until it finds this module's go.mod.
func GetWorkspaceRoot() (string, error) {
	currentdir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs("/")
	if err != nil {
		return "", err
	}

	for currentdir != root {
		if isWorkspaceRoot(currentdir) {
			return currentdir, nil
		}
		currentdir = filepath.Dir(currentdir)
	}

	return "", os.ErrNotExist
}

// ResolvePath expands a leading <dev_state> into the workspace's dev/.state
// directory (creating it), other paths are returned as-is.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, StatePrefix) {
		return path, nil
	}

	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}

	statedir := filepath.Join(root, "dev", ".state")
	err = os.MkdirAll(statedir, 0777)
	if err != nil {
		return "", err
	}

	subpath := strings.TrimPrefix(strings.TrimPrefix(path, StatePrefix), string(os.PathSeparator))
	return filepath.Join(statedir, subpath), nil
}
