package arabictext

import "testing"

func TestExtractNumber(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		found bool
	}{
		{"٩ من ١٠", 9, true},
		{"9/10", 9, true},
		{"۹", 9, true},
		{"٥.٥", 5.5, true},
		{"-3", -3, true},
		{"4 stars", 4, true},
		{"تسعة", 9, true},
		{"تسعه", 9, true},
		{"صفر", 0, true},
		{"عشرة من عشرة", 10, true},
		{"اثنين", 2, true},
		{"نعم", 0, false},
		{"ممتاز", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, found := ExtractNumber(c.in)
		if found != c.found || got != c.want {
			t.Errorf("ExtractNumber(%q) = (%v, %v), want (%v, %v)", c.in, got, found, c.want, c.found)
		}
	}
}

func TestExtractNumberPrefersDigitsOverWords(t *testing.T) {
	// "7 سبعه" carries both a digit and a spelled-out numeral; digits win.
	got, found := ExtractNumber("7 سبعه")
	if !found || got != 7 {
		t.Fatalf("expected 7, got (%v, %v)", got, found)
	}
}
