package rating

import (
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "below range", value: -1, want: 0},
		{name: "above range", value: 7.2, want: 5},
		{name: "in range", value: 3.4, want: 3.4},
		{name: "lower bound", value: 0, want: 0},
		{name: "upper bound", value: 5, want: 5},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.value); got != tc.want {
				t.Fatalf("Clamp(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name       string
		categories Categories
		want       float64
		wantOK     bool
	}{
		{
			name: "mean of present categories only",
			categories: Categories{
				Ethics:     ptr(4),
				Discipline: ptr(5),
				Output:     ptr(3),
			},
			want:   4,
			wantOK: true,
		},
		{
			name: "all seven present",
			categories: Categories{
				Ethics:     ptr(4),
				Discipline: ptr(4),
				WorkEthics: ptr(4),
				Output:     ptr(4),
				TeamPlay:   ptr(4),
				Leadership: ptr(4),
				ExtraMile:  ptr(4),
			},
			want:   4,
			wantOK: true,
		},
		{
			name: "rounded to two decimals",
			categories: Categories{
				Ethics:     ptr(4),
				Discipline: ptr(4),
				Output:     ptr(3),
			},
			want:   3.67,
			wantOK: true,
		},
		{
			name:       "no categories present",
			categories: Categories{},
			want:       0,
			wantOK:     false,
		},
		{
			name: "single category",
			categories: Categories{
				TeamPlay: ptr(2.5),
			},
			want:   2.5,
			wantOK: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AverageScore(tc.categories)
			if ok != tc.wantOK {
				t.Fatalf("AverageScore ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("AverageScore = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCategoriesClamped(t *testing.T) {
	c := Categories{
		Ethics:    ptr(7.2),
		Output:    ptr(-1),
		ExtraMile: ptr(4.5),
	}
	clamped := c.Clamped()

	if got := *clamped.Ethics; got != 5 {
		t.Fatalf("ethics = %v, want 5", got)
	}
	if got := *clamped.Output; got != 0 {
		t.Fatalf("output = %v, want 0", got)
	}
	if got := *clamped.ExtraMile; got != 4.5 {
		t.Fatalf("extraMile = %v, want 4.5", got)
	}
	if clamped.Discipline != nil {
		t.Fatal("absent category must stay absent after clamping")
	}
}

func TestMeanAverageScore(t *testing.T) {
	ratings := []MonthlyRating{
		{AverageScore: 4.0},
		{AverageScore: 5.0},
		{AverageScore: 3.0},
	}
	avg, ok := MeanAverageScore(ratings)
	if !ok {
		t.Fatal("expected a mean for non-empty ratings")
	}
	if avg != 4.0 {
		t.Fatalf("mean = %v, want 4.0", avg)
	}

	if _, ok := MeanAverageScore(nil); ok {
		t.Fatal("no ratings must report no data, not zero data")
	}
}

func TestYearlySeries(t *testing.T) {
	ratings := []MonthlyRating{
		{Month: 3, AverageScore: 4.2},
		{Month: 1, AverageScore: 3.1},
	}

	sparse := YearlySeries(ratings, false)
	if len(sparse) != 2 {
		t.Fatalf("sparse series length = %d, want 2", len(sparse))
	}
	if sparse[0].Month != 1 || sparse[1].Month != 3 {
		t.Fatalf("sparse series must be month-ascending, got %+v", sparse)
	}

	dense := YearlySeries(ratings, true)
	if len(dense) != 12 {
		t.Fatalf("dense series length = %d, want 12", len(dense))
	}
	if dense[0].AvgRating != 3.1 || dense[2].AvgRating != 4.2 {
		t.Fatalf("dense series misplaced ratings: %+v", dense)
	}
	if dense[5].AvgRating != 0 {
		t.Fatalf("unrated month must be zero, got %v", dense[5].AvgRating)
	}
}
