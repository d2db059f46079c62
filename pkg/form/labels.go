package form

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field identifier such as "dateOfBirth",
// "first_name" or "group2" into a display label ("Date Of Birth",
// "First Name", "Group 2").
func DefaultLabeler(id string) string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) == 0 {
			return
		}
		word := []rune(strings.ToLower(string(current)))
		word[0] = unicode.ToUpper(word[0])
		words = append(words, string(word))
		current = current[:0]
	}

	runes := []rune(id)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			continue
		case i > 0 && wordBoundary(runes[i-1], r):
			flush()
		}
		current = append(current, r)
	}
	flush()

	return strings.Join(words, " ")
}

func wordBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}
