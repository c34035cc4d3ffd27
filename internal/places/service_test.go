package places

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCities builds a small dataset with ids assigned the way
// LoadCities does.
func testCities() []City {
	cities := []City{
		{Name: "Paris", Country: "France", CountryCode: "FR", Population: 2100000},
		{Name: "Lyon", Country: "France", CountryCode: "FR", Population: 520000},
		{Name: "Annecy", Country: "France", CountryCode: "FR", Population: 130000},
		{Name: "Tokyo", Country: "Japan", CountryCode: "JP", Population: 13900000},
		{Name: "Osaka", Country: "Japan", CountryCode: "JP", Population: 2700000},
		{Name: "Valletta", Country: "Malta", CountryCode: "MT", Population: 213000},
		{Name: "Smalltown", Country: "Malta", CountryCode: "MT", Population: 9000},
	}
	for i := range cities {
		cities[i].ID = i
	}
	return cities
}

func newTestService() *Service {
	return NewService(testCities(), nil, nil)
}

func TestListPlaces_DefaultFloorHidesSmallCities(t *testing.T) {
	s := newTestService()

	result := s.ListPlaces(ListFilter{}, "", 1, 50)

	names := make([]string, 0, len(result.Places))
	for _, p := range result.Places {
		names = append(names, p.Name)
	}
	assert.NotContains(t, names, "Annecy", "below the default population floor")
	assert.NotContains(t, names, "Smalltown")
	assert.Contains(t, names, "Paris")
	assert.Contains(t, names, "Valletta")
}

func TestListPlaces_CountryFilterLowersFloor(t *testing.T) {
	s := newTestService()

	result := s.ListPlaces(ListFilter{Country: "France"}, "", 1, 50)

	names := make([]string, 0, len(result.Places))
	for _, p := range result.Places {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Paris", "Lyon", "Annecy"}, names,
		"country filter uses the lower population floor")
}

func TestListPlaces_CountryFilterMatchesISOCode(t *testing.T) {
	s := newTestService()

	byName := s.ListPlaces(ListFilter{Country: "japan"}, "", 1, 50)
	byCode := s.ListPlaces(ListFilter{Country: "jp"}, "", 1, 50)

	assert.Equal(t, byName.Total, byCode.Total)
	require.NotZero(t, byName.Total)
}

func TestListPlaces_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := newTestService()

	result := s.ListPlaces(ListFilter{Search: "tok"}, "", 1, 50)

	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Tokyo", result.Places[0].Name)
}

func TestListPlaces_SortKeys(t *testing.T) {
	s := newTestService()

	byPopulation := s.ListPlaces(ListFilter{}, "", 1, 50)
	for i := 1; i < len(byPopulation.Places); i++ {
		assert.GreaterOrEqual(t,
			byPopulation.Places[i-1].Population, byPopulation.Places[i].Population)
	}

	byName := s.ListPlaces(ListFilter{}, "name", 1, 50)
	for i := 1; i < len(byName.Places); i++ {
		assert.LessOrEqual(t, byName.Places[i-1].Name, byName.Places[i].Name)
	}

	byRating := s.ListPlaces(ListFilter{}, "rating", 1, 50)
	for i := 1; i < len(byRating.Places); i++ {
		assert.GreaterOrEqual(t, byRating.Places[i-1].Rating, byRating.Places[i].Rating)
	}
}

func TestListPlaces_PaginationCoversAllWithoutDuplicates(t *testing.T) {
	s := newTestService()

	full := s.ListPlaces(ListFilter{}, "name", 1, 50)
	require.NotZero(t, full.Total)

	seen := map[int]bool{}
	collected := 0
	for page := 1; ; page++ {
		result := s.ListPlaces(ListFilter{}, "name", page, 2)
		assert.Equal(t, full.Total, result.Total, "total is page-independent")
		for _, p := range result.Places {
			assert.False(t, seen[p.ID], "place %d appeared on two pages", p.ID)
			seen[p.ID] = true
			collected++
		}
		if !result.HasMore {
			assert.Empty(t, s.ListPlaces(ListFilter{}, "name", page+1, 2).Places)
			break
		}
		assert.Len(t, result.Places, 2, "every non-final page is full")
	}
	assert.Equal(t, full.Total, collected)
}

func TestListPlaces_PageBeyondEndIsEmptyNotError(t *testing.T) {
	s := newTestService()

	result := s.ListPlaces(ListFilter{}, "", 99, 20)

	assert.Empty(t, result.Places)
	assert.False(t, result.HasMore)
	assert.NotZero(t, result.Total)
}

func TestListPlaces_CuratedRatingOverride(t *testing.T) {
	s := newTestService()

	result := s.ListPlaces(ListFilter{Search: "paris"}, "", 1, 10)

	require.Equal(t, 1, result.Total)
	override, ok := CuratedFor("Paris")
	require.True(t, ok)
	assert.Equal(t, override.Rating, result.Places[0].Rating)
}

func TestGetPlaceDetail_OutOfRange(t *testing.T) {
	s := newTestService()

	_, err := s.GetPlaceDetail(context.Background(), -1)
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	_, err = s.GetPlaceDetail(context.Background(), len(testCities()))
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestGetPlaceDetail_FallbackWithoutMetadataProvider(t *testing.T) {
	s := newTestService()

	detail, err := s.GetPlaceDetail(context.Background(), 1) // Lyon

	require.NoError(t, err)
	assert.Equal(t, "Lyon", detail.Name)
	assert.Equal(t, "Unknown", detail.Currency)
	assert.Equal(t, "Unknown", detail.Language)
	assert.Contains(t, detail.Description, "Lyon")
	assert.Contains(t, detail.Description, "France")
}

func TestGetPlaceDetail_CuratedDescriptionFallback(t *testing.T) {
	s := newTestService()

	detail, err := s.GetPlaceDetail(context.Background(), 0) // Paris

	require.NoError(t, err)
	override, ok := CuratedFor("Paris")
	require.True(t, ok)
	assert.Equal(t, override.Description, detail.Description)
	assert.Equal(t, override.Rating, detail.Rating)
}
