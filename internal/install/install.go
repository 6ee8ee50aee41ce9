// Package install holds the per-platform instructions for shipping logs.
package install

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	keyPlaceholder = "ZZZZZZZZ"
	// MissingKey is shown when no ingestion key is stored.
	MissingKey = "YOUR_INGESTION_KEY_HERE"
)

//go:embed guides.yaml
var guidesYAML []byte

// Guide is the instruction text for one install target.
type Guide struct {
	Target      string `yaml:"target"`
	Description string `yaml:"description"`
	Text        string `yaml:"text"`
}

var loadGuides = sync.OnceValues(func() ([]Guide, error) {
	var guides []Guide
	if err := yaml.Unmarshal(guidesYAML, &guides); err != nil {
		return nil, fmt.Errorf("install: parse guides: %w", err)
	}
	return guides, nil
})

// Guides returns every target in display order.
func Guides() ([]Guide, error) {
	return loadGuides()
}

// Instructions returns the guide for target with ingestionKey filled in. ok
// is false for unknown targets.
func Instructions(target, ingestionKey string) (text string, ok bool, err error) {
	guides, err := loadGuides()
	if err != nil {
		return "", false, err
	}

	if ingestionKey == "" {
		ingestionKey = MissingKey
	}

	for _, g := range guides {
		if g.Target == target {
			return strings.ReplaceAll(g.Text, keyPlaceholder, ingestionKey), true, nil
		}
	}
	return "", false, nil
}

// Choices lists the targets the way `logdna install` prints them for an
// unknown target.
func Choices() (string, error) {
	guides, err := loadGuides()
	if err != nil {
		return "", err
	}

	width := 0
	for _, g := range guides {
		width = max(width, len(g.Target))
	}

	var b strings.Builder
	b.WriteString("Try one of the following:\n")
	for _, g := range guides {
		fmt.Fprintf(&b, "logdna install %-*s  # %s\n", width, g.Target, g.Description)
	}
	return b.String(), nil
}
