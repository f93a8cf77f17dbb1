package kpiboard

import (
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartThemeFor maps the application theme name onto an echarts theme. The
// UI offers light and dark; anything unrecognized gets the light default.
func ChartThemeFor(appTheme string) string {
	switch strings.ToLower(strings.TrimSpace(appTheme)) {
	case "dark":
		return types.ThemeChalk
	case "light", "":
		return types.ThemeWesteros
	default:
		return types.ThemeWesteros
	}
}
