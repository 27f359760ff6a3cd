package loam

// BoreholeMetadata is the header of a borehole document.
// It uses "mapstructure" tags to match the frontmatter/YAML keys.
type BoreholeMetadata struct {
	ID         string   `json:"id" mapstructure:"id"`
	Name       string   `json:"name" mapstructure:"name"`
	Elevation  *float64 `json:"elevation" mapstructure:"elevation"`
	TotalDepth *float64 `json:"total_depth" mapstructure:"total_depth"`

	// Layers maps a layer kind (e.g. "lithology") to its records.
	// Records are kept raw so that unknown keys survive as the interval payload.
	Layers map[string][]map[string]any `json:"layers" mapstructure:"layers"`

	Casings []CasingRecord `json:"casings" mapstructure:"casings"`
}

// CasingRecord is a casing as written in a borehole document.
type CasingRecord struct {
	ID       string           `json:"id" mapstructure:"id"`
	Name     string           `json:"name" mapstructure:"name"`
	Elements []map[string]any `json:"elements" mapstructure:"elements"`
}

// layerRecord is the typed view of one layer or casing element record.
type layerRecord struct {
	ID             string   `mapstructure:"id"`
	From           *float64 `mapstructure:"from"`
	To             *float64 `mapstructure:"to"`
	Unconsolidated bool     `mapstructure:"unconsolidated"`
	Kind           string   `mapstructure:"kind"`
}
