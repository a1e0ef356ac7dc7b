package llmclient

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		delimiters []string
		expected   string
	}{
		{
			name:       "no delimiters is a no-op",
			text:       "full text stays intact",
			delimiters: nil,
			expected:   "full text stays intact",
		},
		{
			name:       "empty delimiter set is a no-op",
			text:       "full text stays intact",
			delimiters: []string{},
			expected:   "full text stays intact",
		},
		{
			name:       "delimiter absent leaves text unchanged",
			text:       "nothing to cut here",
			delimiters: []string{"STOP", "END"},
			expected:   "nothing to cut here",
		},
		{
			name:       "cuts at first occurrence",
			text:       "Hello there. STOP now ignore this",
			delimiters: []string{"STOP"},
			expected:   "Hello there. ",
		},
		{
			name:       "earliest delimiter wins",
			text:       "alpha END beta STOP gamma",
			delimiters: []string{"STOP", "END"},
			expected:   "alpha ",
		},
		{
			name:       "delimiter at start yields empty string",
			text:       "STOP everything",
			delimiters: []string{"STOP"},
			expected:   "",
		},
		{
			name:       "repeated delimiter cuts at the first one",
			text:       "one.two.three",
			delimiters: []string{"."},
			expected:   "one",
		},
		{
			name:       "empty delimiter strings are ignored",
			text:       "keep me whole",
			delimiters: []string{"", "ZZZ"},
			expected:   "keep me whole",
		},
		{
			name:       "empty text",
			text:       "",
			delimiters: []string{"STOP"},
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.text, tt.delimiters)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %v) = %q, want %q", tt.text, tt.delimiters, result, tt.expected)
			}
		})
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	delimiters := []string{"STOP", "\n\n"}
	once := Truncate("first part STOP second part\n\nthird", delimiters)
	twice := Truncate(once, delimiters)

	if once != twice {
		t.Errorf("Truncate not idempotent: first %q, second %q", once, twice)
	}
}
