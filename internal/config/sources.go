package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stockai-news/internal/domain/entity"
)

// sourcesFile is the on-disk shape of a source registry override.
//
//	sources:
//	  - name: Reuters Business
//	    feed_url: https://feeds.reuters.com/reuters/businessNews
//	    category: business
//	    active: true
type sourcesFile struct {
	Sources []entity.Source `yaml:"sources"`
}

// LoadSourcesFile reads a YAML source registry from path. Every entry is
// validated; an empty registry is rejected so a truncated file cannot
// silently disable the pipeline.
func LoadSourcesFile(path string) ([]entity.Source, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("%s: no sources defined", path)
	}

	seen := make(map[string]struct{}, len(f.Sources))
	for i := range f.Sources {
		src := &f.Sources[i]
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := seen[src.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate source name %q", path, src.Name)
		}
		seen[src.Name] = struct{}{}
	}

	return f.Sources, nil
}
