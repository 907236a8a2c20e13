// Package translator provides offline, batch text translation for report
// and advice text. Per spec.md §6 this is an external collaborator
// contract; the implementation here is a curated phrase dictionary rather
// than a network call, matching "offline, batch".
package translator

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported lists the target languages this translator recognizes. English
// is the implicit source and is always a legal target (identity translate).
var Supported = []language.Tag{language.English, language.Hindi}

// Translator does phrase-level, offline translation of a fixed vocabulary
// of report and advice strings into a supported target language.
type Translator struct {
	matcher language.Matcher
	phrases map[language.Tag]map[string]string
}

// New builds a translator with the built-in phrase dictionary.
func New() *Translator {
	return &Translator{
		matcher: language.NewMatcher(Supported),
		phrases: map[language.Tag]map[string]string{
			language.Hindi: hindiPhrases,
		},
	}
}

// TranslateBatch translates each input string into targetLang, falling
// back to the original text for any phrase outside the curated dictionary
// and for any unsupported target language tag.
func (t *Translator) TranslateBatch(texts []string, targetLang string) ([]string, error) {
	tag, _, _ := t.matcher.Match(parseTagOrEnglish(targetLang))

	dict := t.phrases[tag]
	out := make([]string, len(texts))
	for i, text := range texts {
		if dict != nil {
			if translated, ok := dict[text]; ok {
				out[i] = translated
				continue
			}
		}
		out[i] = text
	}
	return out, nil
}

func parseTagOrEnglish(targetLang string) language.Tag {
	tag, err := language.Parse(targetLang)
	if err != nil {
		return language.English
	}
	return tag
}

var hindiPhrases = map[string]string{
	"Insufficient funds.":            "अपर्याप्त धनराशि।",
	"Invalid sector.":                "अमान्य क्षेत्र।",
	"Already applied for this IPO.":  "आपने पहले ही इस आईपीओ के लिए आवेदन किया है।",
	strings.TrimSpace("IPO Closed."): "आईपीओ बंद हो चुका है।",
}
