package arabictext

import "testing"

func TestClassifyYesNo(t *testing.T) {
	cases := []struct {
		in   string
		want Verdict
	}{
		{"نعم", Yes},
		{"طبعا", Yes},
		{"أكيد", Yes},
		{"بكل تأكيد", Yes},
		{"yes", Yes},
		{"Sure", Yes},
		{"1", Yes},
		{"لا", No},
		{"كلا", No},
		{"مستحيل", No},
		{"no", No},
		{"nope", No},
		{"0", No},
		{"ربما", Unknown},
		{"الجو جميل", Unknown},
		{"", Unknown},
	}
	for _, c := range cases {
		if got := ClassifyYesNo(c.in); got != c.want {
			t.Errorf("ClassifyYesNo(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClassifyYesNoBidirectional(t *testing.T) {
	// The input is a fragment of the stored phrase keyword, so reverse
	// containment fires.
	if got := ClassifyYesNo("بالتاكيد"); got != Yes {
		t.Fatalf("expected Yes, got %v", got)
	}
}
