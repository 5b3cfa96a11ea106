// Package responder produces the simulated partner's replies. It is the
// seam a real model provider would replace: everything above it only sees
// text in, text out.
package responder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/persona"
)

// Type is a response category. The phase picks a distribution over these;
// the personality's pools supply the text.
type Type string

const (
	TypeHelpful     Type = "helpful"
	TypeVague       Type = "vague"
	TypeChallenging Type = "challenging"
	TypeWrong       Type = "wrong"
	TypeClarifying  Type = "clarifying"
)

// Message is the slice of chat history the generator cares about.
type Message struct {
	Role string // "user" or "assistant"
	Text string
}

// RoleAssistant marks partner messages in history.
const RoleAssistant = "assistant"

// Generator selects and shapes simulated replies. It is pure apart from
// the injected random source; it never sleeps and never does I/O.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Generator. Tests pass a seeded source for deterministic
// output; production passes a time-seeded one.
func New(cfg Config, src rand.Source) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(src)}
}

// Generate produces one reply: a line drawn from the personality's pool
// for the phase-selected category, optionally prefixed. History is used
// for exactly one thing: avoiding an immediate repeat of the previous
// partner line.
func (g *Generator) Generate(userMessage string, p persona.Personality, phase lessons.Phase, history []Message) string {
	rt := g.drawType(phase, p.Profile)
	pool := poolFor(p.Pools, rt)
	if len(pool) == 0 {
		pool = p.Pools.Helpful
	}

	line := pool[g.rng.Intn(len(pool))]
	if prev := lastAssistantLine(history); prev != "" && len(pool) > 1 && expandLine(line, userMessage) == prev {
		// Never repeat the previous partner line back to back. Walk the
		// pool from a random start until a different line turns up.
		start := g.rng.Intn(len(pool))
		for i := 0; i < len(pool); i++ {
			cand := pool[(start+i)%len(pool)]
			if expandLine(cand, userMessage) != prev {
				line = cand
				break
			}
		}
	}
	line = expandLine(line, userMessage)

	// Low confidence hedges; otherwise a stylistic prefix may apply.
	if p.Profile.Confidence < g.cfg.LowConfidence && len(p.Pools.Uncertainty) > 0 && g.rng.Float64() < g.cfg.PrefixChance {
		line = p.Pools.Uncertainty[g.rng.Intn(len(p.Pools.Uncertainty))] + " " + lowerFirst(line)
	} else if len(p.Pools.Prefixes) > 0 && g.rng.Float64() < g.cfg.PrefixChance {
		line = p.Pools.Prefixes[g.rng.Intn(len(p.Pools.Prefixes))] + " " + line
	}

	if len(p.Pools.Creep) > 0 && g.rng.Float64() < p.Profile.FeatureCreep*g.cfg.CreepScale {
		line = line + " " + p.Pools.Creep[g.rng.Intn(len(p.Pools.Creep))]
	}

	return line
}

// Delay returns a randomized thinking delay within the configured bounds.
func (g *Generator) Delay() time.Duration {
	span := g.cfg.MaxDelay - g.cfg.MinDelay
	if span <= 0 {
		return g.cfg.MinDelay
	}
	return g.cfg.MinDelay + time.Duration(g.rng.Int63n(int64(span)))
}

// drawType samples a response category from the phase distribution,
// skewed by the personality dials.
func (g *Generator) drawType(phase lessons.Phase, prof persona.Profile) Type {
	w := baseWeights(phase)

	w[TypeChallenging] += 0.2 * prof.Challenge
	w[TypeClarifying] += 0.2 * prof.Clarify
	w[TypeHelpful] += 0.15 * prof.AltSuggest
	w[TypeWrong] += 0.15 * (1 - prof.Confidence)

	order := []Type{TypeHelpful, TypeVague, TypeChallenging, TypeWrong, TypeClarifying}
	total := 0.0
	for _, t := range order {
		total += w[t]
	}

	draw := g.rng.Float64() * total
	for _, t := range order {
		draw -= w[t]
		if draw < 0 {
			return t
		}
	}
	return TypeHelpful
}

// baseWeights returns the phase-conditioned category distribution.
// The attempt phase manufactures friction on purpose; the mirror phase
// pushes back; the retry phase is balanced.
func baseWeights(phase lessons.Phase) map[Type]float64 {
	switch phase {
	case lessons.PhaseContext:
		return map[Type]float64{
			TypeHelpful: 0.30, TypeVague: 0.10, TypeChallenging: 0.05,
			TypeWrong: 0.05, TypeClarifying: 0.50,
		}
	case lessons.PhaseAttempt:
		return map[Type]float64{
			TypeHelpful: 0.20, TypeVague: 0.30, TypeChallenging: 0.10,
			TypeWrong: 0.25, TypeClarifying: 0.15,
		}
	case lessons.PhaseMirror:
		return map[Type]float64{
			TypeHelpful: 0.25, TypeVague: 0.10, TypeChallenging: 0.45,
			TypeWrong: 0.05, TypeClarifying: 0.15,
		}
	default: // retry and anything else: balanced
		return map[Type]float64{
			TypeHelpful: 0.20, TypeVague: 0.20, TypeChallenging: 0.20,
			TypeWrong: 0.20, TypeClarifying: 0.20,
		}
	}
}

func poolFor(pools persona.Pools, t Type) []string {
	switch t {
	case TypeHelpful:
		return pools.Helpful
	case TypeVague:
		return pools.Vague
	case TypeChallenging:
		return pools.Challenging
	case TypeWrong:
		return pools.Wrong
	case TypeClarifying:
		return pools.Clarifying
	}
	return nil
}

// expandLine substitutes a fragment of the user's message into lines that
// quote it back (the %q placeholder in pool text).
func expandLine(line, userMessage string) string {
	if !strings.Contains(line, "%q") {
		return line
	}
	return fmt.Sprintf(line, fragment(userMessage))
}

// fragment returns a short quotable excerpt of the user's message.
func fragment(msg string) string {
	msg = strings.TrimSpace(msg)
	const maxLen = 40
	if len(msg) <= maxLen {
		return msg
	}
	cut := msg[:maxLen]
	if i := strings.LastIndex(cut, " "); i > maxLen/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

func lastAssistantLine(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleAssistant {
			return history[i].Text
		}
	}
	return ""
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
