package entity

// VisitKey groups visits by city name and country code
type VisitKey struct {
	Name        string
	CountryCode string
}

// VisitAggregate counts visits per VisitKey across all visitor documents
type VisitAggregate map[VisitKey]int

// Total sums every count in the aggregate
func (a VisitAggregate) Total() int {
	total := 0
	for _, count := range a {
		total += count
	}
	return total
}

// VisitEvent is broadcast for every aggregate snapshot
type VisitEvent struct {
	Aggregate VisitAggregate
	Total     int
	Previous  int
	// Notify is set when Total grew compared to the previous snapshot
	Notify bool
}
