package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "vitrine.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project  projectSection  `toml:"project"`
	Analysis analysisSection `toml:"analysis"`
	Render   renderSection   `toml:"render"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type analysisSection struct {
	// Index is the analysis index file, relative to the manifest directory
	// unless absolute.
	Index string `toml:"index"`
}

type renderSection struct {
	// Out is the default output directory for rendered markup.
	Out        string `toml:"out"`
	Standalone bool   `toml:"standalone"`
}

func findVitrineToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findVitrineToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return projectConfig{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [project].name", path)
	}
	return cfg, nil
}

// IndexPath resolves [analysis].index against the manifest directory.
// Empty when the manifest declares no index.
func (m *projectManifest) IndexPath() string {
	return m.resolve(m.Config.Analysis.Index)
}

// OutDir resolves [render].out against the manifest directory.
func (m *projectManifest) OutDir() string {
	return m.resolve(m.Config.Render.Out)
}

func (m *projectManifest) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Root, filepath.FromSlash(path))
}
