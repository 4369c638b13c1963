package rewrite

import "testing"

func TestRangeContains(t *testing.T) {
	tests := []struct {
		name  string
		outer Range
		inner Range
		want  bool
	}{
		{"strict containment", Range{0, 10}, Range{2, 5}, true},
		{"equal ranges are not contained", Range{2, 5}, Range{2, 5}, false},
		{"touches left edge", Range{0, 10}, Range{0, 5}, true},
		{"touches right edge", Range{0, 10}, Range{5, 10}, true},
		{"extends past end", Range{0, 10}, Range{5, 11}, false},
		{"empty child inside", Range{0, 10}, Range{5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeDisjoint(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"fully separate", Range{0, 2}, Range{4, 6}, true},
		{"touching edges", Range{0, 2}, Range{2, 4}, true},
		{"overlapping", Range{0, 3}, Range{2, 4}, false},
		{"empty at boundary is disjoint", Range{2, 2}, Range{2, 4}, true},
		{"empty strictly inside is not disjoint", Range{3, 3}, Range{2, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Disjoint(tt.b); got != tt.want {
				t.Errorf("Disjoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeJoin(t *testing.T) {
	got := Range{2, 4}.Join(Range{1, 3})
	want := Range{1, 4}
	if got != want {
		t.Errorf("Join() = %v, want %v", got, want)
	}
}
