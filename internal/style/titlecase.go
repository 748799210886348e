package style

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase lowercases the input and capitalizes each word. Words that
// begin with a digit ("1st", "53rd") are left alone so ordinal street
// names keep their conventional form.
func TitleCase(s string) string {
	caser := cases.Title(language.AmericanEnglish)
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}
		words[i] = caser.String(word)
	}
	return strings.Join(words, " ")
}
