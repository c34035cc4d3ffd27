// dataset.go: loads the embedded static city dataset.
package places

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/cities.json
var dataFS embed.FS

// City is one entry of the static dataset. ID is the entry's index in
// the dataset array, assigned once at load and stable for the process
// lifetime; comments and detail links reference it.
type City struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Population  int    `json:"population"`
}

// LoadCities parses the embedded dataset and assigns stable ids.
func LoadCities() ([]City, error) {
	raw, err := dataFS.ReadFile("data/cities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded city dataset: %w", err)
	}

	var cities []City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal city dataset: %w", err)
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("city dataset is empty")
	}

	for i := range cities {
		cities[i].ID = i
	}
	return cities, nil
}
