// Package scoring rates a free-text interview answer against a reference
// sample answer using a keyword-overlap heuristic. It is deliberately
// simple; a future revision could route essay-style answers to an LLM.
package scoring

import "strings"

// Result is the outcome of scoring a single answer.
type Result struct {
	Rating   int    // 1..5
	Feedback string
}

// Scorer rates a user answer against the question's sample answer.
type Scorer interface {
	Score(sampleAnswer, userAnswer string) Result
}

const (
	// ackPrefix opens every feedback string.
	ackPrefix = "Your answer is acceptable. "

	feedbackTooBrief  = ackPrefix + "Your answer is too brief. Try to elaborate more."
	feedbackExcellent = ackPrefix + "Excellent answer that covers key points."
	feedbackGood      = ackPrefix + "Good answer with most important concepts."
	feedbackDecent    = ackPrefix + "Decent answer but missing some important points."
	feedbackWeak      = ackPrefix + "Your answer misses several key concepts."
)

// DefaultResult is returned when no sample answer is available to score
// against (e.g. the referenced question no longer exists).
func DefaultResult() Result {
	return Result{Rating: 3, Feedback: ackPrefix}
}

type Option func(*keywordScorer)

// WithKeywordLimit caps how many leading tokens of the sample answer are
// treated as keywords.
func WithKeywordLimit(n int) Option { return func(s *keywordScorer) { s.keywordLimit = n } }

// WithMinWords sets the word count under which an answer is rated as too
// brief regardless of keyword overlap.
func WithMinWords(n int) Option { return func(s *keywordScorer) { s.minWords = n } }

type keywordScorer struct {
	keywordLimit int
	minWords     int
}

// NewKeywordScorer builds the default heuristic scorer.
func NewKeywordScorer(opts ...Option) Scorer {
	s := &keywordScorer{keywordLimit: 10, minWords: 20}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score is deterministic and has no side effects. The brevity check runs
// before the match tiers: a short answer is always rated 2, even when it
// hits every keyword.
func (s *keywordScorer) Score(sampleAnswer, userAnswer string) Result {
	keywords := strings.Fields(strings.ToLower(sampleAnswer))
	if len(keywords) > s.keywordLimit {
		keywords = keywords[:s.keywordLimit]
	}

	answer := strings.ToLower(userAnswer)
	matches := 0
	for _, k := range keywords {
		if strings.Contains(answer, k) {
			matches++
		}
	}

	switch {
	case len(strings.Fields(answer)) < s.minWords:
		return Result{Rating: 2, Feedback: feedbackTooBrief}
	case float64(matches) > float64(len(keywords))*0.7:
		return Result{Rating: 5, Feedback: feedbackExcellent}
	case float64(matches) > float64(len(keywords))*0.5:
		return Result{Rating: 4, Feedback: feedbackGood}
	case float64(matches) > float64(len(keywords))*0.3:
		return Result{Rating: 3, Feedback: feedbackDecent}
	default:
		return Result{Rating: 2, Feedback: feedbackWeak}
	}
}
