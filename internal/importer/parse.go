package importer

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ParseCookingTime turns a free-text duration into minutes. Candidates are
// checked in order and the first non-empty one wins. "30 min" and "1 hour"
// style strings take the numeric prefix before the unit token; anything else
// must parse as a bare integer. This is a best-effort heuristic over
// uncontrolled input: any parse failure yields nil (unknown), never an
// error.
func ParseCookingTime(candidates ...string) *int {
	var raw string
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			raw = c
			break
		}
	}
	if raw == "" {
		return nil
	}

	var minutes int
	var err error
	switch {
	case strings.Contains(raw, "min"):
		minutes, err = strconv.Atoi(strings.TrimSpace(strings.SplitN(raw, "min", 2)[0]))
	case strings.Contains(raw, "hour"):
		minutes, err = strconv.Atoi(strings.TrimSpace(strings.SplitN(raw, "hour", 2)[0]))
		minutes *= 60
	default:
		minutes, err = strconv.Atoi(strings.TrimSpace(raw))
	}
	if err != nil {
		return nil
	}
	return &minutes
}

// ParseIngredientLine splits one free-text ingredient entry into a quantity
// and a name. The split is on the first space: a leading token that is
// numeric (one optional decimal point) or a fraction becomes the quantity,
// otherwise the quantity defaults to "some" and the whole entry is the name.
func ParseIngredientLine(entry string) (quantity, name string) {
	entry = strings.TrimSpace(entry)
	parts := strings.SplitN(entry, " ", 2)
	if len(parts) == 2 && isQuantityToken(parts[0]) {
		return parts[0], strings.TrimSpace(parts[1])
	}
	return "some", entry
}

func isQuantityToken(tok string) bool {
	if strings.Contains(tok, "/") {
		return true
	}
	digits := strings.Replace(tok, ".", "", 1)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CuisineFromPath derives a display cuisine from a slash-delimited category
// path: the last segment, hyphens replaced with spaces, title-cased
// ("world/italian-cuisine" -> "Italian Cuisine").
func CuisineFromPath(path string) string {
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	return titleCaser.String(strings.ReplaceAll(last, "-", " "))
}
