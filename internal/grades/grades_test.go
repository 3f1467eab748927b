package grades

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		grade string
		want  bool
	}{
		{"7th Grade", true},
		{"8th Grade", true},
		{"9th Grade", false},
		{"7th grade", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.grade); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.grade, got, tt.want)
		}
	}
}
