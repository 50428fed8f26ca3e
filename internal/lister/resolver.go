package lister

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"dirview/internal/config"
)

// Resolver locates the enumeration tool executable.
type Resolver interface {
	Resolve() (string, error)
}

// StaticResolver always returns the configured path. A missing or
// non-executable file surfaces as a SpawnError when the tool is started.
type StaticResolver string

// Resolve returns the path unchanged.
func (r StaticResolver) Resolve() (string, error) {
	if r == "" {
		return "", fmt.Errorf("no enumeration tool configured")
	}
	return string(r), nil
}

// PathResolver searches $PATH for Name, then each fallback location in order.
type PathResolver struct {
	Name      string
	Fallbacks []string
}

// Resolve returns the first executable found.
func (r PathResolver) Resolve() (string, error) {
	if path, err := exec.LookPath(r.Name); err == nil {
		return path, nil
	}

	for _, loc := range r.Fallbacks {
		info, err := os.Stat(loc)
		if err == nil && !info.IsDir() {
			return loc, nil
		}
	}

	return "", fmt.Errorf("%s not found in $PATH", r.Name)
}

// DefaultFallbacks lists the places a bundled tool usually lives: beside the
// running binary, then the working directory.
func DefaultFallbacks(name string) []string {
	var locations []string
	if self, err := os.Executable(); err == nil {
		locations = append(locations, filepath.Join(filepath.Dir(self), name))
	}
	locations = append(locations, filepath.Join(".", name))
	return locations
}

// ResolverFromConfig picks a StaticResolver when a path is configured and a
// PathResolver otherwise.
func ResolverFromConfig(cfg *config.Config) Resolver {
	if cfg.Tool.Path != "" {
		return StaticResolver(cfg.Tool.Path)
	}
	return PathResolver{Name: cfg.Tool.Name, Fallbacks: DefaultFallbacks(cfg.Tool.Name)}
}
