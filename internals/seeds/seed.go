// Package seeds loads reference data and bootstrap accounts. Every step is idempotent.
package seeds

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/seed.yaml
var seedYAML []byte

type RoleSeed struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
}

type PermissionSeed struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type CategorySeed struct {
	Name         string         `yaml:"name"`
	Slug         string         `yaml:"slug"`
	Segment      string         `yaml:"segment"`
	Icon         string         `yaml:"icon"`
	SupportsRent *bool          `yaml:"supportsRent"`
	SupportsSale *bool          `yaml:"supportsSale"`
	IsCommercial bool           `yaml:"isCommercial"`
	Children     []CategorySeed `yaml:"children"`
}

type LocalitySeed struct {
	Name    string `yaml:"name"`
	Pincode string `yaml:"pincode"`
}

type CitySeed struct {
	Name       string         `yaml:"name"`
	State      string         `yaml:"state"`
	Popular    bool           `yaml:"popular"`
	Localities []LocalitySeed `yaml:"localities"`
}

type FlagSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Enabled     bool   `yaml:"enabled"`
}

type Data struct {
	Roles        []RoleSeed       `yaml:"roles"`
	Permissions  []PermissionSeed `yaml:"permissions"`
	Categories   []CategorySeed   `yaml:"categories"`
	Cities       []CitySeed       `yaml:"cities"`
	FeatureFlags []FlagSeed       `yaml:"featureFlags"`
}

// Load parses the embedded seed file.
func Load() (Data, error) {
	return Parse(seedYAML)
}

func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("parse seed data: %w", err)
	}
	return d, nil
}

// orDefault resolves an optional flag, falling back to the parent's value.
func orDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
