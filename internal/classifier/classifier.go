// Package classifier scores clauses against the fixed intent vocabulary.
package classifier

import (
	"context"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/pkg/log"
)

const (
	// smoothing keeps single weak keyword hits below the decision threshold.
	smoothing = 2.0

	defaultCacheSize      = 512
	defaultLexicalWeight  = 0.5
	defaultContrastWeight = 0.5
)

// Config tunes the classifier. Zero values fall back to defaults.
type Config struct {
	CacheSize int
	// LexicalWeight and ContrastWeight combine the raw lexical score with
	// the contrast score (how unchallenged the intent is against its
	// strongest competitor) into one confidence.
	LexicalWeight  float64
	ContrastWeight float64
}

// GateConfig is the two-part confidence gate: the top candidate is
// authoritative only if it clears Threshold and leads the runner-up by
// Margin. Both are configuration, not constants.
type GateConfig struct {
	Threshold float64
	Margin    float64
}

// Classifier is a lexical+contrast scorer over the closed intent set.
type Classifier struct {
	l     log.Logger
	cache *lru.Cache[string, []model.Classification]
	lexW  float64
	conW  float64
}

// New creates a Classifier.
func New(l log.Logger, cfg Config) (*Classifier, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, []model.Classification](size)
	if err != nil {
		return nil, err
	}
	lexW, conW := cfg.LexicalWeight, cfg.ContrastWeight
	if lexW <= 0 && conW <= 0 {
		lexW, conW = defaultLexicalWeight, defaultContrastWeight
	}
	return &Classifier{l: l, cache: cache, lexW: lexW, conW: conW}, nil
}

// Classify returns ranked candidates covering every intent label including
// unknown. Confidences are non-increasing in the returned order; they are
// independent signal strengths and do not sum to 1.
func (c *Classifier) Classify(ctx context.Context, clause model.Clause) []model.Classification {
	if cached, ok := c.cache.Get(clause.Text); ok {
		return stamp(cached, clause.Index)
	}

	raw := lexicalScores(clause.Text)

	cands := make([]model.Classification, 0, len(raw)+1)
	var top float64
	for _, intent := range model.ConcreteIntents() {
		score := raw[intent]
		conf := 0.0
		if score > 0 {
			lex := score / (score + smoothing)
			conf = c.lexW*lex + c.conW*contrast(score, strongestCompetitor(raw, intent))
		}
		if conf > top {
			top = conf
		}
		cands = append(cands, model.Classification{Intent: intent, Confidence: conf})
	}

	// A clause with no strong signal for any concrete intent is still
	// classifiable: unknown absorbs the remaining confidence.
	cands = append(cands, model.Classification{Intent: model.IntentUnknown, Confidence: 1 - top})

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Confidence > cands[j].Confidence
	})

	c.cache.Add(clause.Text, cands)
	c.l.Debugf(ctx, "classifier: %q -> %s (%.2f)", clause.Text, cands[0].Intent, cands[0].Confidence)
	return stamp(cands, clause.Index)
}

// Gate reports whether the ranked candidates pass the two-part confidence
// gate. Candidates must be the output of Classify (ranked, non-empty).
func Gate(cands []model.Classification, cfg GateConfig) bool {
	if len(cands) == 0 || cands[0].Intent == model.IntentUnknown {
		return false
	}
	if cands[0].Confidence < cfg.Threshold {
		return false
	}
	if len(cands) > 1 && cands[0].Confidence-cands[1].Confidence < cfg.Margin {
		return false
	}
	return true
}

// lexicalScores computes the raw per-intent lexical evidence for a
// normalized clause: exact phrases, whole-word keywords, clause-opening
// verbs and compound patterns.
func lexicalScores(text string) map[model.Intent]float64 {
	tokens := strings.Fields(text)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[strings.Trim(t, `"'`)] = struct{}{}
	}
	lead := ""
	if len(tokens) > 0 {
		lead = tokens[0]
	}

	raw := make(map[model.Intent]float64, len(vocab))
	for intent, v := range vocab {
		var score float64
		for _, p := range v.phrases {
			if strings.Contains(text, p) {
				score += phraseWeight
			}
		}
		for _, k := range v.keywords {
			if _, ok := tokenSet[k]; ok {
				score += keywordWeight
			}
		}
		for _, verb := range v.leadVerbs {
			if lead == verb {
				score += leadVerbWeight
				break
			}
		}
		for _, re := range v.compounds {
			if re.MatchString(text) {
				score += compoundWeight
			}
		}
		raw[intent] = score
	}
	return raw
}

// contrast scores how unchallenged an intent is: 1 with no competition,
// falling to 0 when a competitor matches as much evidence.
func contrast(score, competitor float64) float64 {
	if score <= 0 {
		return 0
	}
	c := 1 - competitor/score
	if c < 0 {
		return 0
	}
	return c
}

func strongestCompetitor(raw map[model.Intent]float64, intent model.Intent) float64 {
	var best float64
	for other, score := range raw {
		if other != intent && score > best {
			best = score
		}
	}
	return best
}

// stamp copies cands with the clause index set, so cached rankings are
// never shared mutable across clauses.
func stamp(cands []model.Classification, idx int) []model.Classification {
	out := make([]model.Classification, len(cands))
	for i, cand := range cands {
		cand.ClauseIndex = idx
		out[i] = cand
	}
	return out
}
