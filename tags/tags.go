// Package tags recovers structured fields from free-form model output.
//
// Prompts instruct the model to wrap each field in a named delimiter pair
// such as <summary>...</summary>. Extract performs a single left-to-right
// scan: it is not a markup parser, does not handle a tag nested inside
// itself, and a missing closing delimiter silently absorbs the rest of the
// text. Callers must pick tag names that cannot self-nest in the expected
// output; the vocabulary used by the chaptering prompts (topic, summary,
// section, ans, quiz, lvl, qn, choices, opt) satisfies this.
package tags

import "strings"

// Extract returns the trimmed content of the first <tag>...</tag> pair in
// text, plus everything after the closing delimiter (the remainder for
// repeated extraction). Text before the opening delimiter is discarded.
// If the opening delimiter is absent both return values are empty, which
// callers use as the loop termination signal.
func Extract(text, tag string) (content, rest string) {
	_, after, found := strings.Cut(text, "<"+tag+">")
	if !found {
		return "", ""
	}
	content, rest, _ = strings.Cut(after, "</"+tag+">")
	return strings.TrimSpace(content), rest
}

// ExtractAll repeatedly applies Extract and returns every non-empty field in
// order of appearance.
func ExtractAll(text, tag string) []string {
	var fields []string
	rest := text
	for rest != "" {
		var field string
		field, rest = Extract(rest, tag)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
