package kpiboard

import (
	"context"
	"strings"
)

// TranslationService exposes locale-aware translation helpers. Implementations
// can provide pluralization or interpolation; the board only needs simple
// key lookup with fallback.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided locale
// and falls back to the supplied value. Keys are matched case-insensitively,
// and language-region pairs (`es-mx`) automatically fall back to their base
// language (`es`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if candidate == "" {
			continue
		}
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	if value, ok := values["default"]; ok && value != "" {
		return value
	}
	return fallback
}

// TitleForLocale returns the display title for the requested locale with
// graceful fallback to the default title.
func (d KpiDefinition) TitleForLocale(locale string) string {
	return ResolveLocalizedValue(d.TitleLocalized, locale, d.DisplayTitle)
}

func localeCandidates(locale string) []string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, nil); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
