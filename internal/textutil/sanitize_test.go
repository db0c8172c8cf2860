package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"":                           "",
		"   ":                        "",
		"Blade Runner":               "Blade Runner",
		"AC/DC: Live":                "AC-DC- Live",
		"What?  \"Now\"\t<here>":     "What Now here",
		"a\x00b\x1fc":                "abc",
		" Star Wars | Episode IV  ": "Star Wars Episode IV",
	}
	for input, want := range tests {
		if got := SanitizeFileName(input); got != want {
			t.Fatalf("SanitizeFileName(%q): got %q want %q", input, got, want)
		}
	}
}
