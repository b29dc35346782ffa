package visit

import "city-api/internal/domain/entity"

// AttachVisits returns a copy of cities with Visited set from the aggregate entry
// matching each city's (name, country). Cities lacking either field get 0,
// even when the aggregate holds an entry with an empty name or country.
func AttachVisits(cities []entity.City, aggregate entity.VisitAggregate) []entity.City {
	result := make([]entity.City, len(cities))

	for i, city := range cities {
		city.Visited = 0
		if city.Name != nil && city.Country != nil {
			city.Visited = aggregate[entity.VisitKey{Name: *city.Name, CountryCode: *city.Country}]
		}
		result[i] = city
	}

	return result
}
