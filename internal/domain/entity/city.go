package entity

// City is a city as served by the remote API and kept in the local cache.
// Visited is computed from the visit aggregate and never persisted.
type City struct {
	Country    *string `json:"country"`
	IsCapital  *bool   `json:"is_capital"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Name       *string `json:"name"`
	Population *int    `json:"population"`
	Visited    int     `json:"visited"`
}

// CityKey is the identity of a City
type CityKey struct {
	Latitude  float64
	Longitude float64
}

func (c City) Key() CityKey {
	return CityKey{Latitude: c.Latitude, Longitude: c.Longitude}
}

// NameOrEmpty returns the name, or "" when absent
func (c City) NameOrEmpty() string {
	if c.Name == nil {
		return ""
	}
	return *c.Name
}

// CountryOrEmpty returns the country code, or "" when absent
func (c City) CountryOrEmpty() string {
	if c.Country == nil {
		return ""
	}
	return *c.Country
}
