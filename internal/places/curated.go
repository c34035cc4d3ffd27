// curated.go: hand-authored overrides for well-known destinations.
package places

import "strings"

// CuratedOverride replaces the generated rating and description for a
// specific place. Lookup is case-insensitive on the place name.
type CuratedOverride struct {
	Name        string
	Rating      float64
	Description string
}

// curatedOverrides holds the editorial picks. Generated values are fine
// for the long tail; the marquee destinations deserve real copy.
var curatedOverrides = map[string]CuratedOverride{
	"paris": {
		Name:        "Paris",
		Rating:      4.8,
		Description: "The City of Light pairs world-class museums and iconic monuments with sidewalk cafés and effortless style. From the Eiffel Tower to the Marais, every arrondissement rewards wandering.",
	},
	"rome": {
		Name:        "Rome",
		Rating:      4.8,
		Description: "Layer upon layer of history in an open-air museum: the Colosseum, the Forum and the Vatican share streets with trattorias and piazzas that have fed travelers for centuries.",
	},
	"tokyo": {
		Name:        "Tokyo",
		Rating:      4.9,
		Description: "A metropolis where neon towers and centuries-old shrines coexist. Unmatched food, flawless transit, and neighborhoods that each feel like their own city.",
	},
	"kyiv": {
		Name:        "Kyiv",
		Rating:      4.6,
		Description: "Golden-domed monasteries, broad boulevards and a resilient café culture above the Dnipro river.",
	},
	"new york": {
		Name:        "New York",
		Rating:      4.7,
		Description: "The city that never sleeps: Broadway, Central Park, and food from every corner of the planet packed into five boroughs.",
	},
	"istanbul": {
		Name:        "Istanbul",
		Rating:      4.7,
		Description: "The only city spanning two continents, where Byzantine domes, Ottoman palaces and grand bazaars meet the Bosphorus.",
	},
	"venice": {
		Name:        "Venice",
		Rating:      4.6,
		Description: "A floating labyrinth of canals, gondolas and Renaissance palaces. Best explored by getting thoroughly lost.",
	},
	"marrakesh": {
		Name:        "Marrakesh",
		Rating:      4.5,
		Description: "Ochre walls, maze-like souks and the nightly spectacle of Jemaa el-Fnaa square at the foot of the Atlas mountains.",
	},
	"cusco": {
		Name:        "Cusco",
		Rating:      4.7,
		Description: "The ancient Inca capital and gateway to Machu Picchu, with cobbled lanes, colonial churches and coca-leaf tea for the altitude.",
	},
	"sydney": {
		Name:        "Sydney",
		Rating:      4.7,
		Description: "Harbour views, surf beaches and the white sails of the Opera House. An outdoor city built around one of the world's great natural harbours.",
	},
}

// CuratedFor returns the override for a place name, if one exists.
func CuratedFor(name string) (CuratedOverride, bool) {
	override, ok := curatedOverrides[strings.ToLower(name)]
	return override, ok
}
