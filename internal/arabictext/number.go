package arabictext

import (
	"regexp"
	"strconv"
	"strings"
)

// Optional sign, digits, optional decimal point and further digits.
var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// Spelled-out Arabic numerals zero through ten, pre-normalized. A slice
// keeps the scan order fixed so the first match is deterministic. The
// masculine and feminine spellings of two survive normalization as
// distinct words; the rest collapse to a single form.
var numberWords = []struct {
	word  string
	value float64
}{
	{"صفر", 0},
	{"واحد", 1},
	{"اثنان", 2},
	{"اثنين", 2},
	{"ثلاثه", 3},
	{"اربعه", 4},
	{"خمسه", 5},
	{"سته", 6},
	{"سبعه", 7},
	{"ثمانيه", 8},
	{"تسعه", 9},
	{"عشره", 10},
}

// ExtractNumber recovers a numeric value from free text across digit
// scripts and spelled-out Arabic numerals. All digits are mapped to ASCII
// first, then the first signed decimal substring wins; if none parses, the
// normalized text is scanned for spelled-out numerals. The boolean reports
// whether a value was found.
//
// Mixed constructs resolve to their leading value: "٩ من ١٠" and "9/10"
// both yield 9.
func ExtractNumber(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	ascii := strings.Map(foldDigit, text)
	if m := numberPattern.FindString(ascii); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v, true
		}
	}
	normalized := Normalize(text, false)
	if normalized == "" {
		return 0, false
	}
	for _, nw := range numberWords {
		if strings.Contains(normalized, nw.word) {
			return nw.value, true
		}
	}
	return 0, false
}
