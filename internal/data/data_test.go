package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func minimalDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, ItemsFile, `
items:
  - id: water
    name: Water
    on_use:
      - { kind: satisfy_need, target: thirst, amount: 40 }
      - { kind: add_load, amount: 1 }
`)
	writeFile(t, dir, NpcsFile, `
npcs:
  - id: bob
    name: Bob
    schedule:
      - { time: "0800", action: moveTo, x: 1, y: 1 }
`)
	writeFile(t, dir, QuestsFile, `
quests:
  - id: q
    start: s1
    stages:
      s1:
        objectives:
          - { text: water, kind: HAVE_ITEM, target: water, count: 1 }
        next_stage: complete
`)
	writeFile(t, dir, DialogueFile, `
dialogue:
  - id: d
    root: start
    nodes:
      start:
        text: hi
`)
	writeFile(t, dir, ConditionsFile, `
conditions:
  - { id: flu, transmissibility: 0.5 }
`)
	return dir
}

func TestLoadMinimal(t *testing.T) {
	tables, err := Load(context.Background(), minimalDir(t))
	require.NoError(t, err)

	water := tables.Items.Get("water")
	require.NotNil(t, water)
	assert.True(t, water.Consumable())
	assert.Equal(t, 1.0, rules.Sum(water.OnUse, rules.EffectAddLoad))

	stage := tables.Quests.Stage("q", "s1")
	require.NotNil(t, stage)
	require.Len(t, stage.Objectives, 1)
	assert.Equal(t, rules.KindHaveItem, stage.Objectives[0].Kind.Normalized())
	assert.Equal(t, "water", stage.Objectives[0].Target)
	assert.Equal(t, "water", stage.Objectives[0].Text)
	assert.Equal(t, StageComplete, stage.Next)

	assert.Equal(t, 1, tables.Npcs.Count())
	assert.Equal(t, 0, tables.Maps.Count())
	assert.Equal(t, 0.5, tables.Conditions.Get("flu").Transmissibility)
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	dir := minimalDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, QuestsFile)))
	_, err := Load(context.Background(), dir)
	assert.Error(t, err)
}

func TestLoadFailsOnMalformedYAML(t *testing.T) {
	dir := minimalDir(t)
	writeFile(t, dir, ItemsFile, "items: [ {")
	_, err := Load(context.Background(), dir)
	assert.Error(t, err)
}

func TestLoadRejectsBrokenReferences(t *testing.T) {
	cases := map[string]struct{ file, body string }{
		"unknown stage link": {QuestsFile, `
quests:
  - id: q
    start: s1
    stages:
      s1: { next_stage: nowhere }
`},
		"unknown dialogue node": {DialogueFile, `
dialogue:
  - id: d
    root: start
    nodes:
      start:
        text: hi
        options:
          - { text: go, next: missing }
`},
		"npc unknown dialogue": {NpcsFile, `
npcs:
  - { id: bob, dialogue: nope }
`},
		"bad schedule time": {NpcsFile, `
npcs:
  - id: bob
    schedule:
      - { time: "2500", action: moveTo }
`},
		"unknown effect": {ItemsFile, `
items:
  - id: water
    on_use:
      - { kind: teleport }
`},
		"transmissibility out of range": {ConditionsFile, `
conditions:
  - { id: flu, transmissibility: 1.5 }
`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := minimalDir(t)
			writeFile(t, dir, tc.file, tc.body)
			_, err := Load(context.Background(), dir)
			assert.Error(t, err)
		})
	}
}

func TestMapDataServesFreshGrids(t *testing.T) {
	dir := minimalDir(t)
	writeFile(t, dir, MapsFile, `
maps:
  - { id: room, file: maps/room.txt }
`)
	writeFile(t, dir, "maps/room.txt", "; comment\n####\n#..#\n####\n")

	tables, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 1, tables.Maps.Count())

	m, err := tables.Maps.Load(world.MapRef{ID: "room"})
	require.NoError(t, err)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.True(t, m.Passable(1, 1))
	assert.False(t, m.Passable(0, 0))

	m.Set(1, 1, world.TileWall)
	again, err := tables.Maps.Load(m.Ref)
	require.NoError(t, err)
	assert.True(t, again.Passable(1, 1))
	assert.Equal(t, m.Ref, again.Ref)

	_, err = tables.Maps.Load(world.MapRef{ID: "nope"})
	assert.Error(t, err)
}

func TestShippedDataLoads(t *testing.T) {
	tables, err := Load(context.Background(), filepath.Join("..", "..", "data"))
	require.NoError(t, err)
	assert.NotNil(t, tables.Items.Get("item_001_water"))
	assert.NotNil(t, tables.Quests.Get("quest_001_hydrate"))
	assert.NotNil(t, tables.Dialogue.Get("clerk_intro"))
	assert.Len(t, tables.Npcs.Vendors(), 1)
	assert.Equal(t, 1, tables.Maps.Count())
}
