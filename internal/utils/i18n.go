package utils

// Minimal server-side i18n for fixed keys. The API serves Arabic-first
// tenants, so Arabic is the fallback chain's last stop before the raw key.

var translations = map[string]map[string]string{
	"ar": {
		"health.ok":          "يعمل",
		"error.unauthorized": "غير مصرح",
		"error.forbidden":    "ممنوع",
		"error.not_found":    "غير موجود",
	},
	"en": {
		"health.ok":          "ok",
		"error.unauthorized": "unauthorized",
		"error.forbidden":    "forbidden",
		"error.not_found":    "not found",
	},
}

// T returns the translated string for key in locale; falls back to Arabic.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["ar"][key]; ok {
		return v
	}
	return key
}
