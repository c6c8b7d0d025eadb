package source

import "testing"

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans merge to hull",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span changes nothing",
			a:        Span{File: 1, Start: 10, End: 40},
			b:        Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "overlap extends start",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 5, End: 12},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "different file is ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "zero-length span extends end",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 25, End: 25},
			expected: Span{File: 1, Start: 10, End: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Basics(t *testing.T) {
	s := Span{File: 3, Start: 10, End: 14}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if s.Empty() {
		t.Error("non-empty span reported Empty()")
	}
	if got := s.String(); got != "3:10-14" {
		t.Errorf("String() = %q", got)
	}

	e := s.CollapseToEnd()
	if e != (Span{File: 3, Start: 14, End: 14}) {
		t.Errorf("CollapseToEnd() = %+v", e)
	}
	if !e.Empty() {
		t.Error("collapsed span is not empty")
	}
}
