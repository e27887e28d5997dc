// Package arabictext canonicalizes Arabic and mixed Arabic/English free text
// so that keyword matching and number extraction behave the same across
// dialectal spellings, diacritics, letter variants, and digit scripts.
package arabictext

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const tatweel = "ـ"

// Tashkeel, superscript alef, Quranic annotation marks, and Arabic
// presentation-form diacritics.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06ED, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFE7F, Stride: 1},
	},
}

// Zero-width joiner/non-joiner, zero-width space, and BOM. These break
// substring matching if left in place.
var zeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200B, Hi: 0x200D, Stride: 1},
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1},
	},
}

// Both transformers are stateless, so sharing them across goroutines is safe.
var (
	removeZeroWidth  = runes.Remove(runes.In(zeroWidth))
	removeDiacritics = runes.Remove(runes.In(diacritics))
)

// Letter folds: all alef variants to bare alef, hamza carriers to their
// base letter, standalone hamza deleted, alef maqsura to yaa, taa marbuta
// to haa.
var letterFolds = strings.NewReplacer(
	"أ", "ا", // alef with hamza above
	"إ", "ا", // alef with hamza below
	"آ", "ا", // alef with madda
	"ٱ", "ا", // alef wasla
	"ؤ", "و", // hamza on waw
	"ئ", "ي", // hamza on yaa
	"ء", "", // standalone hamza
	"ى", "ي", // alef maqsura
	"ة", "ه", // taa marbuta
)

var punctFolds = strings.NewReplacer(
	"؟", "?", // Arabic question mark
	"،", ",", // Arabic comma
	"؛", ";", // Arabic semicolon
)

// edgePunct is stripped from both ends of the result, spaces included so
// stripping cannot expose fresh trailing whitespace.
const edgePunct = ".,;:!?؟،؛ "

// Normalize canonicalizes text for matching. It is total (empty input
// yields "") and idempotent. The step order matters: zero-width characters
// are stripped before NFC composition, diacritics after lowercasing, and
// letter folds before digit and punctuation mapping.
//
// When preserveDigits is true, Arabic-Indic and Extended-Arabic-Indic
// digits are kept as written instead of being mapped to ASCII.
func Normalize(text string, preserveDigits bool) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return ""
	}
	t, _, _ = transform.String(removeZeroWidth, t)
	t = norm.NFC.String(t)
	t = strings.ToLower(t)
	t = strings.ReplaceAll(t, tatweel, "")
	t, _, _ = transform.String(removeDiacritics, t)
	t = letterFolds.Replace(t)
	if !preserveDigits {
		t = strings.Map(foldDigit, t)
	}
	t = punctFolds.Replace(t)
	t = strings.Join(strings.Fields(t), " ")
	return strings.Trim(t, edgePunct)
}

// foldDigit maps Arabic-Indic and Extended-Arabic-Indic (Persian) digits
// to ASCII 0-9 and leaves every other rune untouched.
func foldDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	}
	return r
}
