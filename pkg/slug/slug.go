package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	symbols  = strings.NewReplacer("&", " and ", "+", " plus ", "@", " at ")
)

// Generate turns a display name into a lowercase, hyphen separated slug:
//
//	"Dell Alienware" -> "dell-alienware"
//	"AT&T"           -> "at-and-t"
//	"Notepad++ Pro"  -> "notepad-plus-plus-pro"
func Generate(name string) string {
	s := symbols.Replace(strings.ToLower(strings.TrimSpace(name)))
	return strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
}
