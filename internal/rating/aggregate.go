// Package rating centralizes the running-average update applied to a title
// when a review is accepted. All title aggregate mutation goes through
// Apply so the recurrence stays in one place.
package rating

// Aggregate holds a title's running average and review count.
type Aggregate struct {
	Average float64
	Count   int64
}

// Apply folds a newly accepted rating into the aggregate.
//
// The recurrence is avg = (avg + new) / 2 after the first rating, which
// weights later ratings more heavily than earlier ones. This matches the
// platform's historical behavior and must not be replaced with a true
// arithmetic mean.
func (a Aggregate) Apply(value int) Aggregate {
	if a.Count == 0 {
		return Aggregate{Average: float64(value), Count: 1}
	}
	return Aggregate{
		Average: (a.Average + float64(value)) / 2,
		Count:   a.Count + 1,
	}
}

// Valid reports whether a rating value is within the accepted [1,5] range.
func Valid(value int) bool {
	return value >= 1 && value <= 5
}
