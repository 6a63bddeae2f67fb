// Package i18n resolves request languages and registers message catalogs
// for the demo service.
package i18n

import (
	"strings"

	// Registers the embedded message catalogs with x/text.
	_ "github.com/louisbranch/crumbtrail/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher       = language.NewMatcher(supportedTags)
)

// SupportedTags returns the languages with message catalogs.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supportedTags...)
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return supportedTags[0]
}

// MatchTags picks the best supported language for the preferred tags.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// ParseTag parses value and maps it onto a supported language. The bool is
// false when value is not a well-formed tag or nothing supported is close.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
