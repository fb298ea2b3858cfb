package dataset

import "testing"

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.0", 1.0, true},
		{"-0.25", -0.25, true},
		{"  3.5", 3.5, true},
		{".5", 0.5, true},
		{"2.", 2, true},
		{"1e3", 1000, true},
		{"1.5px", 1.5, true},
		{"+4", 4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"Infinity", 0, false},
		{"NaN", 0, false},
		{"1e999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseFloat(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{"0", 0},
		{"12abc", 12},
		{"7.9", 7},
		{" 3", 3},
		{"", 0},
		{"n/a", 0},
		{"-4", 0},
		{"2147483647", MaxCount},
		{"2147483648", 0},
		{"99999999999999999999", 0},
	}

	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
