package export

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Evening Gala", "Evening_Gala"},
		{"  Look   1 ", "Look_1"},
		{"Soirée à Paris", "Soiree_a_Paris"},
		{"Bride's \"look\" #2!", "Brides_look_2"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
		{"already_clean_42", "already_clean_42"},
		{"日本語", "slide"},
		{"", "slide"},
		{"!!!", "slide"},
		{"a - b", "a_b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Sanitize(got); again != got {
				t.Errorf("Sanitize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNamerFilename(t *testing.T) {
	tests := []struct {
		prefix string
		title  string
		token  int64
		want   string
	}{
		{"peridot", "Evening Gala", 1700000000000, "peridot-Evening_Gala-1700000000000.png"},
		{"", "Look 1", 5, "peridot-Look_1-5.png"},
		{"Studio X", "", 7, "Studio_X-slide-7.png"},
	}
	for _, tt := range tests {
		if got := (Namer{Prefix: tt.prefix}).Filename(tt.title, tt.token); got != tt.want {
			t.Errorf("Filename(%q, %q, %d) = %q, want %q", tt.prefix, tt.title, tt.token, got, tt.want)
		}
	}
}
