package builder

import (
	"regexp"
	"strings"
)

var wordSeparators = regexp.MustCompile(`[_\-\s.]+`)

// Label turns a property name into a row title: "billing_address",
// "billingAddress" and "billing-address" all become "Billing Address".
func Label(name string) string {
	if name == "" {
		return ""
	}

	var words []string
	for _, part := range wordSeparators.Split(name, -1) {
		if part == "" {
			continue
		}
		for _, word := range strings.Fields(splitCamel(part)) {
			words = append(words, capitalise(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(rune(input[i-1]), r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func capitalise(word string) string {
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
