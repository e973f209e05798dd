package queryplan

import (
	"math/rand"
	"strings"
)

// Diversification exists because the retrieval backend is a ranked index:
// a deterministic query returns the same handful of clips every run.
// Probabilities are empirical tuning constants.
const (
	localeBiasP   = 0.4
	extraItalianP = 0.3
	modifierP     = 0.5
)

var contextTerms = []string{
	"business",
	"office",
	"corporate",
	"professional",
	"team",
	"meeting",
	"startup",
	"entrepreneur",
	"workspace",
	"strategy",
}

// Locale bias: the sourced content targets an Italian business audience.
var localeTerms = []string{
	"italian business",
	"milan office",
	"european executive",
	"italian professional",
}

var italianTerms = []string{
	"azienda",
	"ufficio",
	"riunione",
	"impresa",
	"lavoro",
}

var modifiers = []string{
	"cinematic",
	"modern",
	"elegant",
	"bright",
	"dynamic",
}

// Planner builds diversified search queries from a seed keyword. The RNG is
// injected so callers can reproduce specific draws.
type Planner struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) Planner {
	return Planner{rng: rng}
}

// Plan returns a space-joined query that always contains the seed keyword
// as a token, in shuffled order.
func (p Planner) Plan(keyword string) string {
	var terms []string
	if p.rng.Float64() < localeBiasP {
		terms = sample(p.rng, localeTerms, 1+p.rng.Intn(2))
		if p.rng.Float64() < extraItalianP {
			terms = append(terms, sample(p.rng, italianTerms, 1)...)
		}
	} else {
		terms = sample(p.rng, contextTerms, 2+p.rng.Intn(2))
	}
	if p.rng.Float64() < modifierP {
		terms = append(terms, sample(p.rng, modifiers, 1)...)
	}

	tokens := append([]string{keyword}, terms...)
	p.rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})
	return strings.Join(tokens, " ")
}

// sample draws n distinct elements; n is clamped to the vocabulary size.
func sample(rng *rand.Rand, vocab []string, n int) []string {
	if n > len(vocab) {
		n = len(vocab)
	}
	if n <= 0 {
		return nil
	}
	idx := rng.Perm(len(vocab))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, vocab[i])
	}
	return out
}
