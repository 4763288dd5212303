package system

import (
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func haveItem(id string) data.Objective {
	return data.Objective{Text: "get " + id, Predicate: rules.Predicate{Kind: rules.KindHaveItem, Target: id}}
}

func TestQuestCompletesTheTurnAfterItemArrives(t *testing.T) {
	w := newWorld(t)
	p := spawnPlayer(w, 0, 0)
	ecs.Add(w.Store(), p, component.Quest{Active: map[string]*component.QuestProgress{
		"hydrate": {Stage: "start"},
	}})
	book := questBook{"hydrate": {"start": {Objectives: []data.Objective{haveItem("water")}, Next: data.StageComplete}}}
	w.RegisterSystem(NewQuestSystem(book, rules.NewEvaluator(nil, zap.NewNop()), zap.NewNop()))

	w.UpdateSystems(1)
	q, _ := ecs.Get[component.Quest](w.Store(), p)
	require.Contains(t, q.Active, "hydrate")

	inv, _ := ecs.Get[component.Inventory](w.Store(), p)
	inv.Items = append(inv.Items, component.ItemRecord{UID: "u1", DefID: "water"})

	w.UpdateSystems(1)
	assert.NotContains(t, q.Active, "hydrate")
	assert.Equal(t, []string{"hydrate"}, q.Completed)
}

func TestQuestObjectivesNeverRegress(t *testing.T) {
	w := newWorld(t)
	p := spawnPlayer(w, 0, 0)
	ecs.Add(w.Store(), p, component.Quest{Active: map[string]*component.QuestProgress{
		"errands": {Stage: "shop"},
	}})
	book := questBook{"errands": {
		"shop":   {Objectives: []data.Objective{haveItem("water"), haveItem("keys")}, Next: "return"},
		"return": {Objectives: []data.Objective{haveItem("phone")}, Next: data.StageComplete},
	}}
	w.RegisterSystem(NewQuestSystem(book, rules.NewEvaluator(nil, zap.NewNop()), zap.NewNop()))

	inv, _ := ecs.Get[component.Inventory](w.Store(), p)
	inv.Items = []component.ItemRecord{{UID: "u1", DefID: "water"}}
	w.UpdateSystems(1)

	q, _ := ecs.Get[component.Quest](w.Store(), p)
	prog := q.Active["errands"]
	assert.Equal(t, "shop", prog.Stage)
	assert.True(t, prog.Objectives[0])
	assert.False(t, prog.Objectives[1])

	// The water is gone but its objective stays done.
	inv.Items = []component.ItemRecord{{UID: "u2", DefID: "keys"}}
	w.UpdateSystems(1)
	assert.Equal(t, "return", prog.Stage)
	assert.Empty(t, prog.Objectives)
	assert.Empty(t, q.Completed)
}

func TestQuestUnknownStageIsSkipped(t *testing.T) {
	w := newWorld(t)
	p := spawnPlayer(w, 0, 0)
	ecs.Add(w.Store(), p, component.Quest{Active: map[string]*component.QuestProgress{
		"ghost": {Stage: "nowhere"},
	}})
	w.RegisterSystem(NewQuestSystem(questBook{}, rules.NewEvaluator(nil, zap.NewNop()), zap.NewNop()))

	w.UpdateSystems(1)
	q, _ := ecs.Get[component.Quest](w.Store(), p)
	assert.Contains(t, q.Active, "ghost")
}
