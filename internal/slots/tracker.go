package slots

import (
	"strings"
	"unicode"
)

// tracker is the mutable consumed-span arena the extraction rules share.
// Quoted spans are lifted out on construction; every other rule claims
// token ranges through consume and later rules only see what is left.
type tracker struct {
	text   string
	quoted []string
	tokens []string
	used   []bool
}

func newTracker(text string) *tracker {
	tr := &tracker{text: text}

	remainder := quotedRe.ReplaceAllStringFunc(text, func(m string) string {
		tr.quoted = append(tr.quoted, strings.Trim(m, `"'`))
		return " "
	})

	for _, tok := range strings.Fields(remainder) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return unicode.IsPunct(r) && r != '/' && r != ':' && r != '.' && r != '-'
		})
		tok = strings.TrimRight(tok, ".")
		if tok != "" {
			tr.tokens = append(tr.tokens, tok)
		}
	}
	tr.used = make([]bool, len(tr.tokens))
	return tr
}

// claimQuoted returns the quoted spans, in order of appearance. They are
// already excluded from the token stream.
func (tr *tracker) claimQuoted() []string {
	return tr.quoted
}

func (tr *tracker) consume(i, j int) {
	for ; i < j && i < len(tr.used); i++ {
		tr.used[i] = true
	}
}

// claimVocab matches the longest known vocabulary entry against a run of
// unconsumed tokens and consumes it.
func (tr *tracker) claimVocab(vocab []string) (string, bool) {
	for _, entry := range vocab {
		want := strings.Fields(entry)
		if len(want) == 0 {
			continue
		}
		for i := 0; i+len(want) <= len(tr.tokens); i++ {
			if tr.matchesAt(i, want) {
				tr.consume(i, i+len(want))
				return entry, true
			}
		}
	}
	return "", false
}

func (tr *tracker) matchesAt(i int, want []string) bool {
	for k, w := range want {
		if tr.used[i+k] || tr.tokens[i+k] != w {
			return false
		}
	}
	return true
}

// residualTokens returns the unconsumed tokens with the leading run of cue
// words removed. Interior cue words are kept: they may be part of the value.
func (tr *tracker) residualTokens(cues []string) []string {
	cueSet := make(map[string]struct{}, len(cues))
	for _, c := range cues {
		cueSet[c] = struct{}{}
	}

	var rest []string
	leading := true
	for i, tok := range tr.tokens {
		if tr.used[i] {
			continue
		}
		if leading {
			if _, ok := cueSet[tok]; ok {
				continue
			}
			leading = false
		}
		rest = append(rest, tok)
	}
	return rest
}

// residual joins residualTokens into one span.
func (tr *tracker) residual(cues []string) string {
	return strings.Join(tr.residualTokens(cues), " ")
}
