// Package config locates and reads ctmlc project configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileNames are the config file names tried in each directory, in order.
var FileNames = []string{"ctmlc.yaml", "ctmlc.yml"}

// Project is a directory holding a config file.
type Project struct {
	Root string
	File string
}

// Locate walks up from dir to the nearest directory holding a config file.
func Locate(dir string) (Project, bool) {
	for {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return Project{Root: dir, File: p}, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Project{}, false
		}
		dir = parent
	}
}

// Read parses the config file at path. Unset fields get their defaults.
func Read(path string) (*ProjectConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadFromDir reads the config of the project containing dir. It returns
// nil, nil outside any project.
func LoadFromDir(dir string) (*ProjectConfig, error) {
	p, ok := Locate(dir)
	if !ok {
		return nil, nil
	}
	return Read(p.File)
}
