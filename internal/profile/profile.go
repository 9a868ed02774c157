// Package profile holds the batch-wide generation settings: which column
// marks a processable source, which field becomes the label title, and how
// the QR payload is assembled.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the generation configuration shared by every record in one
// batch. Zero-valued fields fall back to the defaults from Default().
type Profile struct {
	// MarkerColumn must be present in the source headers for the input to
	// be considered processable at all.
	MarkerColumn string `yaml:"marker_column"`
	// TitleField names the reserved field rendered as the label title and
	// excluded from the attribute table.
	TitleField string `yaml:"title_field"`
	// Prefix is the fixed tag every payload starts with.
	Prefix string `yaml:"prefix"`
	// Separator delimits payload segments. Values containing the separator
	// are encoded as-is; see the package doc for payload semantics.
	Separator string `yaml:"separator"`
	// ModuleSize is the rendered size of one QR module in pixels.
	ModuleSize int `yaml:"module_size"`
	// Fields is the default field selection used when the caller supplies
	// none.
	Fields []string `yaml:"fields"`
}

// Default returns the compiled-in profile matching the plant's label
// conventions.
func Default() Profile {
	return Profile{
		MarkerColumn: "WOCO",
		TitleField:   "nombre",
		Prefix:       "AR-QR",
		Separator:    "|",
		ModuleSize:   10,
		Fields:       []string{"ID", "LOTE", "PESO Kg", "UNID. MEDIDA"},
	}
}

// Load reads a YAML profile from path. Fields the file leaves unset keep
// their default values.
func Load(path string) (Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read profile: %w", err)
	}

	var overrides Profile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return p, fmt.Errorf("failed to parse profile: %w", err)
	}

	p.merge(overrides)
	return p, nil
}

func (p *Profile) merge(o Profile) {
	if o.MarkerColumn != "" {
		p.MarkerColumn = o.MarkerColumn
	}
	if o.TitleField != "" {
		p.TitleField = o.TitleField
	}
	if o.Prefix != "" {
		p.Prefix = o.Prefix
	}
	if o.Separator != "" {
		p.Separator = o.Separator
	}
	if o.ModuleSize != 0 {
		p.ModuleSize = o.ModuleSize
	}
	if len(o.Fields) > 0 {
		p.Fields = o.Fields
	}
}
