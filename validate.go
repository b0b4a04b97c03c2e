package decima

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// validateRelPath checks a root-relative path taken from container data
// before it is joined to the root directory.
func validateRelPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %q must not be absolute", ErrInvalidPath, p)
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("%w: %q must use forward slashes", ErrInvalidPath, p)
	}
	clean := path.Clean(p)
	if clean != p {
		return fmt.Errorf("%w: %q must be normalized as %q", ErrInvalidPath, p, clean)
	}
	if clean == "." {
		return fmt.Errorf("%w: path must not be current directory", ErrInvalidPath)
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q escapes the root", ErrInvalidPath, p)
	}
	return nil
}

// containerPath maps an external ref path to its file under root.
func containerPath(root, rel string) (string, error) {
	if err := validateRelPath(rel); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(rel)+".core"), nil
}

// streamPath maps a cache: stream path to its file under root.
func streamPath(root string, s StreamRef) (string, error) {
	rel, err := s.RelativePath()
	if err != nil {
		return "", err
	}
	if err := validateRelPath(rel); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}
