package source

import (
	"testing"
)

func TestSpan_Empty(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		expected bool
	}{
		{name: "zero span", span: Span{}, expected: true},
		{name: "zero-length at offset", span: Span{File: 1, Start: 10, End: 10}, expected: true},
		{name: "single byte", span: Span{File: 1, Start: 10, End: 11}, expected: false},
		{name: "wide span", span: Span{File: 2, Start: 0, End: 100}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Empty(); got != tt.expected {
				t.Errorf("Empty() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Len(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		expected uint32
	}{
		{name: "zero span", span: Span{}, expected: 0},
		{name: "single byte", span: Span{Start: 5, End: 6}, expected: 1},
		{name: "wide span", span: Span{Start: 10, End: 110}, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Len(); got != tt.expected {
				t.Errorf("Len() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	tests := []struct {
		name     string
		outer    Span
		inner    Span
		expected bool
	}{
		{
			name:     "proper subset",
			outer:    Span{File: 1, Start: 0, End: 20},
			inner:    Span{File: 1, Start: 5, End: 10},
			expected: true,
		},
		{
			name:     "identical spans",
			outer:    Span{File: 1, Start: 5, End: 10},
			inner:    Span{File: 1, Start: 5, End: 10},
			expected: true,
		},
		{
			name:     "overlap past end",
			outer:    Span{File: 1, Start: 0, End: 10},
			inner:    Span{File: 1, Start: 5, End: 15},
			expected: false,
		},
		{
			name:     "different files",
			outer:    Span{File: 1, Start: 0, End: 20},
			inner:    Span{File: 2, Start: 5, End: 10},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.expected {
				t.Errorf("Contains() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{File: 3, Start: 7, End: 19}
	if got := s.String(); got != "3:7-19" {
		t.Errorf("String() = %q, want %q", got, "3:7-19")
	}
}
