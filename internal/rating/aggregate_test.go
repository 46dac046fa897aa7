package rating

import (
	"math"
	"testing"
)

func TestApplyFirstRating(t *testing.T) {
	agg := Aggregate{}.Apply(5)
	if agg.Average != 5 {
		t.Fatalf("Average = %v, want 5", agg.Average)
	}
	if agg.Count != 1 {
		t.Fatalf("Count = %d, want 1", agg.Count)
	}
}

func TestApplyHalvingRecurrence(t *testing.T) {
	agg := Aggregate{}.Apply(5).Apply(3)
	if agg.Average != 4.0 {
		t.Fatalf("Average = %v, want 4.0", agg.Average)
	}
	if agg.Count != 2 {
		t.Fatalf("Count = %d, want 2", agg.Count)
	}
}

func TestApplyMatchesFold(t *testing.T) {
	ratings := []int{2, 5, 1, 4, 3, 5, 2}

	agg := Aggregate{}
	for _, r := range ratings {
		agg = agg.Apply(r)
	}

	want := float64(ratings[0])
	for _, r := range ratings[1:] {
		want = (want + float64(r)) / 2
	}

	if math.Abs(agg.Average-want) > 1e-9 {
		t.Fatalf("Average = %v, want fold result %v", agg.Average, want)
	}
	if agg.Count != int64(len(ratings)) {
		t.Fatalf("Count = %d, want %d", agg.Count, len(ratings))
	}
}

func TestApplyIsNotArithmeticMean(t *testing.T) {
	agg := Aggregate{}.Apply(1).Apply(1).Apply(5)
	// A true mean would give 7/3; the recurrence gives 3.0.
	if agg.Average != 3.0 {
		t.Fatalf("Average = %v, want 3.0", agg.Average)
	}
}

func TestValid(t *testing.T) {
	for _, v := range []int{1, 2, 3, 4, 5} {
		if !Valid(v) {
			t.Fatalf("Valid(%d) = false, want true", v)
		}
	}
	for _, v := range []int{0, -1, 6, 100} {
		if Valid(v) {
			t.Fatalf("Valid(%d) = true, want false", v)
		}
	}
}
