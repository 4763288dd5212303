package game

import (
	"github.com/MTvrimPossible/simulation-game/internal/config"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/system"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// Deps are the collaborators the default pipeline is built from.
// Scripts and Saver may be nil.
type Deps struct {
	Tables    *data.Tables
	Evaluator *rules.Evaluator
	Scripts   system.EffectRunner
	Deaths    system.DeathHandler
	Saver     system.Saver
	Rules     config.RulesConfig
	Storage   config.StorageConfig
	Seed      int64
	Log       *zap.Logger
}

// Pipeline exposes the systems the loop needs to reach directly.
type Pipeline struct {
	Mortality *system.MortalitySystem
	Autosave  *system.AutosaveSystem
}

// RegisterDefaultSystems installs the standard pipeline on w. Input is
// applied first, time advances next, and the destroy queue is flushed last
// so every system sees this turn's entities.
func RegisterDefaultSystems(w *world.World, d Deps) Pipeline {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	named := func(s string) *zap.Logger { return log.Named(s) }

	items := d.Tables.Items
	w.RegisterSystem(system.NewPlayerControlSystem(items, named("player_control")))
	w.RegisterSystem(system.NewClockSystem())
	w.RegisterSystem(system.NewNeedsSystem(d.Rules.BeelineThreshold, named("needs")))
	w.RegisterSystem(system.NewScheduleSystem(w, named("schedule")))
	w.RegisterSystem(system.NewMovementSystem())
	w.RegisterSystem(system.NewOwnershipSystem(w, d.Rules.StolenLifespan, named("ownership")))
	w.RegisterSystem(system.NewContagionSystem(world.NewDeterministicRNG(d.Seed, "contagion"), named("contagion")))
	w.RegisterSystem(system.NewItemEffectSystem(w, items, d.Scripts, named("item_effect")))
	w.RegisterSystem(system.NewIrreversibleLoadSystem(w, items, named("load")))
	w.RegisterSystem(system.NewReputationSystem(w, system.ReputationRules{
		LieGain:   d.Rules.LieGain,
		TruthLoss: d.Rules.TruthLoss,
		Sign:      d.Rules.ReputationSign,
	}, named("reputation")))
	w.RegisterSystem(system.NewTradingSystem(w, named("trading")))
	w.RegisterSystem(system.NewQuestSystem(d.Tables.Quests, d.Evaluator, named("quest")))

	p := Pipeline{Mortality: system.NewMortalitySystem(d.Deaths, named("mortality"))}
	w.RegisterSystem(p.Mortality)
	if d.Saver != nil {
		p.Autosave = system.NewAutosaveSystem(d.Saver, d.Storage.AutosaveSlot, d.Storage.AutosaveInterval, named("autosave"))
		w.RegisterSystem(p.Autosave)
	}
	w.RegisterSystem(system.NewCleanupSystem(named("cleanup")))
	return p
}
