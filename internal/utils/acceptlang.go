package utils

import (
	"sort"
	"strconv"
	"strings"
)

// DetermineLocale resolves the locale for a request from the explicit query
// param, the Accept-Language header, the supported set, and a default.
// Supported values are normalized base tags like "ar", "en".
func DetermineLocale(queryLang, acceptLang string, supported []string, def string) string {
	sup := map[string]struct{}{}
	for _, s := range supported {
		sup[strings.ToLower(s)] = struct{}{}
	}

	pick := func(lang string) (string, bool) {
		if lang == "" {
			return "", false
		}
		l := strings.ToLower(strings.TrimSpace(lang))
		if _, ok := sup[l]; ok {
			return l, true
		}
		// region subtags collapse to the base language (ar-AE -> ar)
		if i := strings.Index(l, "-"); i > 0 {
			if _, ok := sup[l[:i]]; ok {
				return l[:i], true
			}
		}
		return "", false
	}

	if v, ok := pick(queryLang); ok {
		return v
	}

	type cand struct {
		lang string
		q    float64
	}
	var cands []cand
	for _, part := range strings.Split(acceptLang, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		lang, q := p, 1.0
		if semi := strings.Index(p, ";"); semi >= 0 {
			lang = strings.TrimSpace(p[:semi])
			for _, attr := range strings.Split(p[semi+1:], ";") {
				if k, v, ok := strings.Cut(strings.TrimSpace(attr), "="); ok && strings.TrimSpace(k) == "q" {
					if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
						q = f
					}
				}
			}
		}
		if l, ok := pick(lang); ok {
			cands = append(cands, cand{lang: l, q: q})
		}
	}
	if len(cands) > 0 {
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].q > cands[j].q })
		return cands[0].lang
	}

	if v, ok := pick(def); ok {
		return v
	}
	if len(supported) > 0 {
		return strings.ToLower(supported[0])
	}
	return "ar"
}
