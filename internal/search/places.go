package search

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPlaces is the built-in list of popular places used for local suggestions.
var DefaultPlaces = []string{
	"São Paulo, BR",
	"Rio de Janeiro, BR",
	"Belo Horizonte, BR",
	"Salvador, BR",
	"Brasília, BR",
	"Curitiba, BR",
	"Recife, BR",
	"Porto Alegre, BR",
	"Fortaleza, BR",
	"Manaus, BR",
	"Belém, BR",
	"Goiânia, BR",
	"Araruama, BR",
	"Cabo Frio, BR",
	"Saquarema, BR",
	"Niterói, BR",
	"Petrópolis, BR",
	"London, GB",
	"New York, US",
	"Paris, FR",
	"Tokyo, JP",
	"Madrid, ES",
	"Rome, IT",
	"Berlin, DE",
	"Amsterdam, NL",
}

type placesFile struct {
	Places []string `yaml:"places"`
}

// LoadPlaces reads a YAML file of the form `places: ["London, GB", ...]`.
// An empty path returns DefaultPlaces.
func LoadPlaces(path string) ([]string, error) {
	if path == "" {
		return DefaultPlaces, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places file: %w", err)
	}

	var f placesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse places file %s: %w", path, err)
	}
	if len(f.Places) == 0 {
		return nil, fmt.Errorf("places file %s lists no places", path)
	}
	return f.Places, nil
}
