package queryplan

import (
	"math/rand"
	"strings"
	"testing"
)

func TestPlan_AlwaysContainsSeedKeyword(t *testing.T) {
	t.Parallel()

	keywords := []string{"businessman", "office", "handshake"}
	for seed := int64(0); seed < 200; seed++ {
		p := New(rand.New(rand.NewSource(seed)))
		for _, kw := range keywords {
			q := p.Plan(kw)
			found := false
			for _, tok := range strings.Fields(q) {
				if tok == kw {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("seed %d: query %q does not contain keyword %q", seed, q, kw)
			}
		}
	}
}

func TestPlan_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := New(rand.New(rand.NewSource(42))).Plan("meeting")
	b := New(rand.New(rand.NewSource(42))).Plan("meeting")
	if a != b {
		t.Fatalf("same seed produced different queries: %q vs %q", a, b)
	}
}

func TestPlan_VariesAcrossDraws(t *testing.T) {
	t.Parallel()

	p := New(rand.New(rand.NewSource(1)))
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		seen[p.Plan("office")] = struct{}{}
	}
	if len(seen) < 10 {
		t.Fatalf("expected diversified queries, got only %d distinct of 50", len(seen))
	}
}

func TestSample_ClampsToVocabulary(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	vocab := []string{"a", "b"}
	got := sample(rng, vocab, 10)
	if len(got) != len(vocab) {
		t.Fatalf("expected clamp to %d, got %d", len(vocab), len(got))
	}
	if got := sample(rng, vocab, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}

func TestSample_DistinctElements(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 100; i++ {
		got := sample(rng, contextTerms, 3)
		seen := map[string]struct{}{}
		for _, s := range got {
			if _, dup := seen[s]; dup {
				t.Fatalf("duplicate term %q in sample %v", s, got)
			}
			seen[s] = struct{}{}
		}
	}
}
