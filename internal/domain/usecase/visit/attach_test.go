package visit

import (
	"testing"

	"city-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func cityIn(name, country string) entity.City {
	return entity.City{Name: &name, Country: &country}
}

func TestAttachVisits(t *testing.T) {
	cities := []entity.City{cityIn("Lisbon", "PT"), cityIn("Paris", "FR"), cityIn("Lisbon", "US")}
	aggregate := entity.VisitAggregate{
		{Name: "Lisbon", CountryCode: "PT"}: 2,
		{Name: "Paris", CountryCode: "FR"}:  1,
	}

	result := AttachVisits(cities, aggregate)

	assert.Equal(t, []int{2, 1, 0}, []int{result[0].Visited, result[1].Visited, result[2].Visited})
	assert.Equal(t, "Lisbon", *result[0].Name)
	assert.Equal(t, "US", *result[2].Country)
	assert.Zero(t, cities[0].Visited)
}

func TestAttachVisits_ResetsStaleCounts(t *testing.T) {
	city := cityIn("Lima", "PE")
	city.Visited = 7

	result := AttachVisits([]entity.City{city}, entity.VisitAggregate{})
	assert.Zero(t, result[0].Visited)
}

// A nil name or country matches nothing, not even an entry whose fields are empty
func TestAttachVisits_MissingFieldsNeverMatch(t *testing.T) {
	aggregate := entity.VisitAggregate{{Name: "", CountryCode: ""}: 4}

	result := AttachVisits([]entity.City{{Latitude: 1, Longitude: 1}}, aggregate)
	assert.Zero(t, result[0].Visited)
}

func TestAttachVisits_Empty(t *testing.T) {
	assert.Empty(t, AttachVisits(nil, entity.VisitAggregate{}))
}
