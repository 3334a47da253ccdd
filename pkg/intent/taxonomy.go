package intent

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/taxonomy.json
var taxonomyData embed.FS

// LoadTaxonomy parses the bundled intent taxonomy.
func LoadTaxonomy() ([]IntentDefinition, error) {
	raw, err := taxonomyData.ReadFile("data/taxonomy.json")
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var definitions []IntentDefinition
	if err := json.Unmarshal(raw, &definitions); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return definitions, nil
}

// MustLoadTaxonomy panics on a corrupt bundled taxonomy. The file ships inside
// the binary, so failure here is a build defect, not a runtime condition.
func MustLoadTaxonomy() []IntentDefinition {
	definitions, err := LoadTaxonomy()
	if err != nil {
		panic(err)
	}
	return definitions
}
