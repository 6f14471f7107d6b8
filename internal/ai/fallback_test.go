package ai

import "testing"

func TestFallbackText(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"What CAREER suits me?", fallbackCareer},
		{"any job openings", fallbackCareer},
		{"how should I study", fallbackStudy},
		{"learn programming", fallbackStudy},
		{"coding tips", fallbackProgramming},
		{"Programming in Go", fallbackProgramming},
		{"career in coding", fallbackCareer},
		{"hello", fallbackGeneric},
		{"", fallbackGeneric},
	}
	for _, tt := range tests {
		if got := FallbackText(tt.prompt); got != tt.want {
			t.Fatalf("prompt %q: got %q", tt.prompt, got)
		}
	}
}
