package session

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short message keeps all words",
			input:    "Hi there",
			expected: "Hi there",
		},
		{
			name:     "exactly four words no ellipsis",
			input:    "How are you doing",
			expected: "How are you doing",
		},
		{
			name:     "long message truncated with ellipsis",
			input:    "Hello how are you doing",
			expected: "Hello how are you...",
		},
		{
			name:     "single word",
			input:    "hello",
			expected: "hello",
		},
		{
			name:     "extra whitespace collapsed",
			input:    "  what   is  retrieval   augmented generation  ",
			expected: "what is retrieval augmented...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.input); got != tt.expected {
				t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
