// Package normalizer turns raw utterance text into ordered clauses.
package normalizer

import (
	"strings"
	"unicode"

	"voice-assistant-engine/internal/model"
)

// conjunctions that split a compound utterance into clauses.
// Quoted spans are opaque: a conjunction inside matching quotes never splits.
// An unquoted literal "and" in a title is unavoidably ambiguous here and
// still splits.
var conjunctions = []string{"and", "then"}

// Normalizer case-folds input, strips wake-word prefixes and splits
// compound utterances.
type Normalizer struct {
	wakeWords []string
}

// New creates a Normalizer. Wake words are matched as prefixes only,
// longest first.
func New(wakeWords []string) *Normalizer {
	words := make([]string, len(wakeWords))
	for i, w := range wakeWords {
		words[i] = strings.ToLower(strings.TrimSpace(w))
	}
	// Longest first so "hey samantha" wins over "samantha".
	for i := 0; i < len(words); i++ {
		for j := i + 1; j < len(words); j++ {
			if len(words[j]) > len(words[i]) {
				words[i], words[j] = words[j], words[i]
			}
		}
	}
	return &Normalizer{wakeWords: words}
}

// Normalize returns the ordered clause sequence for text. The result is
// empty if and only if the input is empty or is solely a wake word.
// Normalizing an already-normalized clause returns it unchanged.
func (n *Normalizer) Normalize(utteranceSeq uint64, text string) []model.Clause {
	s := strings.ToLower(strings.TrimSpace(text))
	s = n.stripWakeWord(s)
	if s == "" {
		return nil
	}

	clauses := make([]model.Clause, 0, 2)
	for _, part := range splitOutsideQuotes(s, conjunctions) {
		part = trimClause(part)
		if part == "" {
			continue
		}
		clauses = append(clauses, model.Clause{
			UtteranceSeq: utteranceSeq,
			Index:        len(clauses),
			Text:         part,
		})
	}
	return clauses
}

// stripWakeWord removes a configured wake word at the start of s, with an
// optional trailing comma. Wake words elsewhere in the text are left alone.
func (n *Normalizer) stripWakeWord(s string) string {
	for _, w := range n.wakeWords {
		if w == "" {
			continue
		}
		if s == w {
			return ""
		}
		if strings.HasPrefix(s, w) {
			rest := s[len(w):]
			if rest[0] == ' ' || rest[0] == ',' {
				return strings.TrimLeft(rest, ", ")
			}
		}
	}
	return s
}

// splitOutsideQuotes splits s on any of the separator words, matched as
// whole space-delimited words outside quoted spans.
func splitOutsideQuotes(s string, seps []string) []string {
	var (
		parts   []string
		start   int
		inQuote rune
	)

	i := 0
	for i < len(s) {
		r := rune(s[i])
		if inQuote != 0 {
			if r == inQuote {
				inQuote = 0
			}
			i++
			continue
		}
		if r == '"' || r == '\'' {
			inQuote = r
			i++
			continue
		}
		if r == ' ' {
			for _, sep := range seps {
				end := i + 1 + len(sep)
				if end <= len(s) && s[i+1:end] == sep && (end == len(s) || s[end] == ' ') {
					parts = append(parts, s[start:i])
					start = end
					if start < len(s) {
						start++ // skip the space after the separator
					}
					i = end
					break
				}
			}
		}
		i++
	}
	parts = append(parts, s[start:])
	return parts
}

// trimClause strips surrounding whitespace and punctuation from one clause.
func trimClause(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '.' || r == '!' ||
			r == '?' || r == ';' || r == ':'
	})
}
