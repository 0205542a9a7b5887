package database

import (
	_ "embed"
	"fmt"

	"mentionmates/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed/creators.yaml
var demoCreators []byte

type seedFile struct {
	Creators []models.Creator `yaml:"creators"`
}

// Seed loads the bundled demo creators into s and returns how many were
// inserted. Seeded creators keep their fixed ids so the demo front end can
// address them directly.
func Seed(s *Store) (int, error) {
	return SeedFrom(s, demoCreators)
}

// SeedFrom loads creators from a YAML document shaped like seed/creators.yaml.
func SeedFrom(s *Store, doc []byte) (int, error) {
	var file seedFile
	if err := yaml.Unmarshal(doc, &file); err != nil {
		return 0, fmt.Errorf("parse seed data: %w", err)
	}

	for i, c := range file.Creators {
		if c.ID == "" || c.Email == "" {
			return i, fmt.Errorf("seed creator %d: id and email are required", i)
		}
		if err := s.insertCreator(c); err != nil {
			return i, fmt.Errorf("seed creator %d: %w", i, err)
		}
	}
	return len(file.Creators), nil
}
