package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// widthPattern matches the first numeric token immediately followed by
// "cm", with either a period or a comma as the decimal separator.
var widthPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*cm`)

// ParseWidthCM extracts a width in centimeters from a product name.
// Returns nil when the name carries no width token.
func ParseWidthCM(name string) *float64 {
	m := widthPattern.FindStringSubmatch(name)
	if m == nil {
		return nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}
