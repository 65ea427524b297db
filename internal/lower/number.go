package lower

import "strconv"

// parseNumber converts a lexed INT or FLOAT literal's text into the
// single float64 representation the IR's uniform scalar model uses
// (spec.md §4.4: "no distinct integer type at the IR level").
func parseNumber(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
