package data

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// File names inside the data directory.
const (
	ItemsFile      = "items.yaml"
	NpcsFile       = "npcs.yaml"
	QuestsFile     = "quests.yaml"
	DialogueFile   = "dialogue.yaml"
	ConditionsFile = "conditions.yaml"
	MapsFile       = "maps.yaml"
)

// Tables bundles every definition table the simulation reads.
type Tables struct {
	Items      *ItemTable
	Npcs       *NpcTable
	Quests     *QuestTable
	Dialogue   *DialogueTable
	Conditions *ConditionTable
	Maps       *MapDataTable
}

// Load reads all tables from dir concurrently. Any failure aborts the whole
// load; the simulation must not start on partial data.
func Load(ctx context.Context, dir string) (*Tables, error) {
	t := &Tables{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		t.Items, err = LoadItemTable(filepath.Join(dir, ItemsFile))
		return err
	})
	g.Go(func() (err error) {
		t.Npcs, err = LoadNpcTable(filepath.Join(dir, NpcsFile))
		return err
	})
	g.Go(func() (err error) {
		t.Quests, err = LoadQuestTable(filepath.Join(dir, QuestsFile))
		return err
	})
	g.Go(func() (err error) {
		t.Dialogue, err = LoadDialogueTable(filepath.Join(dir, DialogueFile))
		return err
	})
	g.Go(func() (err error) {
		t.Conditions, err = LoadConditionTable(filepath.Join(dir, ConditionsFile))
		return err
	})
	g.Go(func() (err error) {
		t.Maps, err = LoadMapData(filepath.Join(dir, MapsFile), dir)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load data %s: %w", dir, err)
	}
	if err := t.crossCheck(); err != nil {
		return nil, fmt.Errorf("load data %s: %w", dir, err)
	}
	return t, nil
}

// crossCheck verifies references between tables.
func (t *Tables) crossCheck() error {
	for _, npc := range t.Npcs.All() {
		if npc.Dialogue != "" && t.Dialogue.Get(npc.Dialogue) == nil {
			return fmt.Errorf("npc %s: unknown dialogue %q", npc.ID, npc.Dialogue)
		}
		for _, id := range npc.Carries {
			if t.Items.Get(id) == nil {
				return fmt.Errorf("npc %s: unknown item %q", npc.ID, id)
			}
		}
		for _, id := range npc.Infected {
			if t.Conditions.Get(id) == nil {
				return fmt.Errorf("npc %s: unknown condition %q", npc.ID, id)
			}
		}
	}
	for _, v := range t.Npcs.Vendors() {
		for _, s := range v.Stock {
			if t.Items.Get(s.ItemID) == nil {
				return fmt.Errorf("vendor %s: unknown item %q", v.ID, s.ItemID)
			}
		}
	}
	return nil
}
