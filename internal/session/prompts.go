package session

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Catalog maps prompt identifiers to display text.
type Catalog struct {
	text map[string]string
}

// LoadCatalog decodes the built-in prompt text and applies overrides on top.
func LoadCatalog(overrides map[string]string) (*Catalog, error) {
	text := make(map[string]string)
	if err := yaml.Unmarshal(defaultPrompts, &text); err != nil {
		return nil, fmt.Errorf("parsing built-in prompts: %w", err)
	}
	for k, v := range overrides {
		text[k] = v
	}
	return &Catalog{text: text}, nil
}

// Text returns the display text for key, or the key itself when unknown.
func (c *Catalog) Text(key string) string {
	if s, ok := c.text[key]; ok {
		return s
	}
	return key
}

// Format renders the text for key with args.
func (c *Catalog) Format(key string, args ...any) string {
	return fmt.Sprintf(c.Text(key), args...)
}
