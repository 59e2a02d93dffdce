package slug

import "testing"

// TestGenerate exercises the slug generator with Latin, Mongolian Cyrillic,
// and edge-case inputs.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation stripped",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "surrounding whitespace",
			input: "  padded title  ",
			want:  "padded-title",
		},
		{
			name:  "consecutive separators collapse",
			input: "a  --  b",
			want:  "a-b",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "mongolian store name",
			input: "Улсын их дэлгүүр",
			want:  "ulsyn-ikh-delguur",
		},
		{
			name:  "mongolian with hyphen",
			input: "Шангри-Ла Молл",
			want:  "shangri-la-moll",
		},
		{
			name:  "mongolian category",
			input: "Худалдааны төв",
			want:  "khudaldaany-tov",
		},
		{
			name:  "mixed script",
			input: "Номин Supermarket 24",
			want:  "nomin-supermarket-24",
		},
		{
			name:  "soft and hard signs dropped",
			input: "объект",
			want:  "obyekt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
