package theme

import "strings"

var colorTokens = map[string]bool{
	"primary01":   true,
	"primary02":   true,
	"secondary01": true,
	"secondary02": true,
	"background":  true,
	"shadow":      true,
	"icons01":     true,
	"icons02":     true,
	"text01":      true,
	"text02":      true,
}

var utilityPrefixes = map[string]bool{
	"bg":          true,
	"text":        true,
	"border":      true,
	"ring":        true,
	"placeholder": true,
	"accent":      true,
	"fill":        true,
	"stroke":      true,
}

// ResolveClasses rewrites themed utility classes for theme n, so that
// "bg-primary01 p-4" becomes "bg-dark-primary01 p-4". Other tokens pass
// through unchanged.
func ResolveClasses(n Name, cls string) string {
	tokens := strings.Split(cls, " ")
	for i, token := range tokens {
		utility, color, ok := strings.Cut(token, "-")
		if ok && utilityPrefixes[utility] && colorTokens[color] {
			tokens[i] = utility + "-" + string(n) + "-" + color
		}
	}
	return strings.Join(tokens, " ")
}
