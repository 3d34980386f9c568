// Package errormodel computes the typing-error probabilities the searcher
// uses to weigh corrections against an exact hit. The constants below are a
// fixed contract reproduced from the reference implementation's noisy-channel
// model (derived from motor-impaired and non-impaired typing-error studies);
// they are not meant to be tuned or exposed through configuration.
package errormodel

import "github.com/inetis-oss/autocomplete/pkg/keyboard"

const (
	keypressErrorProb = 0.05 // per-keystroke probability of any typing error

	insertionBase     = 0.16
	substitutionBase  = 0.17
	deletionBase      = 0.60
	transpositionBase = 0.06

	beginInsertionPenalty    = 0.05
	beginSubstitutionPenalty = 0.10
)

// Probabilities holds the five operation weights for a single candidate
// expansion, plus the begin-of-query penalties substitute/insert apply to
// their own edge-transition probability.
type Probabilities struct {
	Hit                      float64
	Insertion                float64
	Substitution             float64
	Deletion                 float64
	Transposition            float64
	BeginInsertionPenalty    float64
	BeginSubstitutionPenalty float64
}

// Compute derives the per-operation probabilities for a candidate currently
// sitting at trie node nodeChar, with queryChar the next unconsumed query
// byte. atQueryBegin/atSecondChar identify whether the candidate's query
// cursor is at the first or second byte of the (already left-trimmed) query,
// since a deletion is much less likely that early on. Everywhere else the
// deletion probability is penalized when the unconsumed query character sits
// far from the character already matched at this node, since deletions
// cluster around medial, easily-confused characters.
func Compute(kb *keyboard.Keyboard, atQueryBegin, atSecondChar bool, nodeChar, queryChar byte) Probabilities {
	p := Probabilities{
		Hit:                      1 - keypressErrorProb,
		Insertion:                insertionBase * keypressErrorProb,
		Substitution:             substitutionBase * keypressErrorProb,
		Deletion:                 deletionBase * keypressErrorProb,
		Transposition:            transpositionBase * keypressErrorProb,
		BeginInsertionPenalty:    beginInsertionPenalty,
		BeginSubstitutionPenalty: beginSubstitutionPenalty,
	}

	switch {
	case atQueryBegin:
		p.Deletion *= 0.05
	case atSecondChar:
		p.Deletion *= 0.1
	default:
		if kb.Distance(queryChar, nodeChar) > 2 {
			p.Deletion *= 0.25
		}
	}

	return p
}

// TransitionProbability returns the probability of the query's current
// character actually meaning childChar, based on keyboard distance, plus
// whether this is an exact (zero-distance) match. atQueryBegin applies
// beginPenalty whenever the transition isn't an exact match, since an error
// right at the start of a query is less likely than one further in.
func TransitionProbability(kb *keyboard.Keyboard, childChar, queryChar byte, atQueryBegin bool, beginPenalty float64) (prob float64, exactMatch bool) {
	d := kb.Distance(childChar, queryChar)

	switch {
	case d == 0:
		prob = 0.95
	case d == 1:
		prob = 0.10
	case d < 4:
		prob = 0.05
	case d < 8:
		prob = 0.0025
	default:
		prob = 0.00005
	}

	if atQueryBegin && d > 0 {
		prob *= beginPenalty
	}

	return prob, d == 0
}
