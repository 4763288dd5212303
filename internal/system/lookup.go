// Package system holds the behavior units run by the world each turn.
// Systems hold only private bookkeeping: event queues, one-shot latches,
// RNG streams. Everything authoritative lives in the store or on the World.
package system

import (
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
)

// ItemLookup resolves item definitions. *data.ItemTable implements it.
type ItemLookup interface {
	Get(id string) *data.ItemDef
}

// QuestLookup resolves quest stages. *data.QuestTable implements it.
type QuestLookup interface {
	Stage(questID, stage string) *data.StageDef
}

// EffectRunner runs scripted item effects. *scripting.Engine implements it.
type EffectRunner interface {
	Effect(fn string, subject rules.Capabilities) (map[string]float64, error)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
