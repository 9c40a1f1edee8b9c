package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Unless applies mws, in order, to every request whose path is not exempt.
// Exempt requests skip all of them, so a gate and the role check that follows
// it are bypassed together. An entry ending in "/*" exempts every path below
// its prefix; anything else must match the request path exactly.
func Unless(exemptPaths []string, mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	exempt := exemptMatcher(exemptPaths)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := next
		for i := len(mws) - 1; i >= 0; i-- {
			guarded = mws[i](guarded)
		}
		return func(c echo.Context) error {
			if exempt(c.Request().URL.Path) {
				return next(c)
			}
			return guarded(c)
		}
	}
}

func exemptMatcher(paths []string) func(string) bool {
	exact := make(map[string]struct{}, len(paths))
	var prefixes []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
		case strings.HasSuffix(p, "/*"):
			prefixes = append(prefixes, strings.TrimSuffix(p, "*"))
		default:
			exact[p] = struct{}{}
		}
	}
	return func(path string) bool {
		if _, ok := exact[path]; ok {
			return true
		}
		for _, pre := range prefixes {
			if strings.HasPrefix(path, pre) {
				return true
			}
		}
		return false
	}
}
