package responder

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/persona"
)

// testPersona returns a personality with no prefixes or creep lines so
// tests can compare generated replies against pool text directly.
func testPersona() persona.Personality {
	return persona.Personality{
		ID:   "plain",
		Name: "Plain",
		Profile: persona.Profile{
			Challenge: 0.2, Clarify: 0.2, AltSuggest: 0.2,
			Confidence: 0.9, FeatureCreep: 0,
		},
		Pools: persona.Pools{
			Helpful:     []string{"helpful one", "helpful two"},
			Vague:       []string{"vague one", "vague two"},
			Challenging: []string{"challenging one", "challenging two"},
			Wrong:       []string{"wrong one", "wrong two"},
			Clarifying:  []string{"clarifying one", "clarifying two"},
		},
	}
}

func allPoolLines(p persona.Personality) map[string]bool {
	lines := make(map[string]bool)
	for _, pool := range [][]string{
		p.Pools.Helpful, p.Pools.Vague, p.Pools.Challenging,
		p.Pools.Wrong, p.Pools.Clarifying,
	} {
		for _, l := range pool {
			lines[l] = true
		}
	}
	return lines
}

func TestGenerate_DrawsFromPools(t *testing.T) {
	g := New(DefaultConfig(), rand.NewSource(1))
	p := testPersona()
	known := allPoolLines(p)

	for i := 0; i < 50; i++ {
		got := g.Generate("build the thing", p, lessons.PhaseAttempt, nil)
		if !known[got] {
			t.Fatalf("reply %q is not a pool line", got)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := testPersona()

	a := New(DefaultConfig(), rand.NewSource(42))
	b := New(DefaultConfig(), rand.NewSource(42))

	for i := 0; i < 20; i++ {
		ra := a.Generate("same input", p, lessons.PhaseRetry, nil)
		rb := b.Generate("same input", p, lessons.PhaseRetry, nil)
		if ra != rb {
			t.Fatalf("same seed diverged at draw %d: %q vs %q", i, ra, rb)
		}
	}
}

func TestGenerate_PhaseBias(t *testing.T) {
	p := testPersona()
	g := New(DefaultConfig(), rand.NewSource(7))

	const n = 2000
	clarifying := 0
	for i := 0; i < n; i++ {
		got := g.Generate("hello", p, lessons.PhaseContext, nil)
		if strings.HasPrefix(got, "clarifying") {
			clarifying++
		}
	}

	// Phase A weights clarifying at ~0.5 of the mass (plus the clarify
	// dial); anything under a third means the distribution is broken.
	if clarifying < n/3 {
		t.Errorf("phase A produced only %d/%d clarifying replies", clarifying, n)
	}
}

func TestGenerate_AttemptPhaseManufacturesFriction(t *testing.T) {
	p := testPersona()
	g := New(DefaultConfig(), rand.NewSource(11))

	const n = 2000
	friction := 0
	for i := 0; i < n; i++ {
		got := g.Generate("hello", p, lessons.PhaseAttempt, nil)
		if strings.HasPrefix(got, "vague") || strings.HasPrefix(got, "wrong") {
			friction++
		}
	}

	if friction < n/3 {
		t.Errorf("phase B produced only %d/%d vague or wrong replies", friction, n)
	}
}

func TestGenerate_AvoidsImmediateRepeat(t *testing.T) {
	p := testPersona()
	g := New(DefaultConfig(), rand.NewSource(3))

	history := []Message{}
	for i := 0; i < 100; i++ {
		got := g.Generate("keep going", p, lessons.PhaseRetry, history)
		if prev := lastAssistantLine(history); prev != "" && got == prev {
			t.Fatalf("repeated previous line %q at draw %d", got, i)
		}
		history = append(history, Message{Role: RoleAssistant, Text: got})
	}
}

func TestGenerate_QuotesUserFragment(t *testing.T) {
	p := testPersona()
	p.Pools.Clarifying = []string{"when you say %q, what do you mean?"}

	g := New(DefaultConfig(), rand.NewSource(5))

	// Phase A is clarifying-heavy; draw until the quoting line appears.
	for i := 0; i < 200; i++ {
		got := g.Generate("make it faster", p, lessons.PhaseContext, nil)
		if strings.Contains(got, "when you say") {
			if !strings.Contains(got, `"make it faster"`) {
				t.Fatalf("expected user fragment quoted, got %q", got)
			}
			return
		}
	}
	t.Fatal("clarifying line never drawn in 200 attempts")
}

func TestGenerate_PrefixChance(t *testing.T) {
	p := testPersona()
	p.Pools.Prefixes = []string{"PREFIX:"}

	g := New(DefaultConfig(), rand.NewSource(9))

	const n = 2000
	prefixed := 0
	for i := 0; i < n; i++ {
		got := g.Generate("hello", p, lessons.PhaseRetry, nil)
		if strings.HasPrefix(got, "PREFIX:") {
			prefixed++
		}
	}

	// Expect roughly 30%; allow a generous band.
	if prefixed < n/5 || prefixed > n/2 {
		t.Errorf("prefix applied %d/%d times, expected near 30%%", prefixed, n)
	}
}

func TestDelay_WithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg, rand.NewSource(13))

	for i := 0; i < 100; i++ {
		d := g.Delay()
		if d < cfg.MinDelay || d > cfg.MaxDelay {
			t.Fatalf("delay %v outside [%v, %v]", d, cfg.MinDelay, cfg.MaxDelay)
		}
	}
}
