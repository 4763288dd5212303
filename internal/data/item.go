package data

import (
	"fmt"
	"os"

	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"gopkg.in/yaml.v3"
)

// ItemDef holds static data for an item type loaded from YAML.
type ItemDef struct {
	ID    string         `yaml:"id"`
	Name  string         `yaml:"name"`
	Tile  string         `yaml:"tile"`
	Color string         `yaml:"color"`
	Price int            `yaml:"price"`
	OnUse []rules.Effect `yaml:"on_use"`

	// Scatter is how many public copies lie around a fresh world.
	Scatter int `yaml:"scatter"`
}

// Consumable reports whether using the item does anything.
func (d *ItemDef) Consumable() bool { return len(d.OnUse) > 0 }

type itemListFile struct {
	Items []ItemDef `yaml:"items"`
}

// ItemTable holds all item definitions indexed by ID.
type ItemTable struct {
	items map[string]*ItemDef
	order []string
}

// LoadItemTable loads item definitions from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item_list: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item_list: %w", err)
	}
	t := &ItemTable{items: make(map[string]*ItemDef, len(f.Items))}
	for i := range f.Items {
		it := &f.Items[i]
		if it.ID == "" {
			return nil, fmt.Errorf("item_list entry %d: missing id", i)
		}
		if _, dup := t.items[it.ID]; dup {
			return nil, fmt.Errorf("item_list: duplicate id %q", it.ID)
		}
		for _, eff := range it.OnUse {
			if err := validateEffect(eff); err != nil {
				return nil, fmt.Errorf("item %s: %w", it.ID, err)
			}
		}
		t.items[it.ID] = it
		t.order = append(t.order, it.ID)
	}
	return t, nil
}

// Get returns an item definition by ID, or nil if not found.
func (t *ItemTable) Get(id string) *ItemDef {
	return t.items[id]
}

// All returns the definitions in file order.
func (t *ItemTable) All() []*ItemDef {
	out := make([]*ItemDef, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.items[id])
	}
	return out
}

// Count returns the number of loaded definitions.
func (t *ItemTable) Count() int {
	return len(t.items)
}

func validateEffect(e rules.Effect) error {
	switch e.Kind {
	case rules.EffectSatisfyNeed:
		if e.Target == "" {
			return fmt.Errorf("satisfy_need without target")
		}
	case rules.EffectAddLoad:
		if e.Amount < 0 {
			return fmt.Errorf("add_load must not be negative")
		}
	case rules.EffectSocial:
		if e.Target != "lie" && e.Target != "truth" {
			return fmt.Errorf("social effect %q: want lie or truth", e.Target)
		}
	case rules.EffectScript:
		if e.Script == "" {
			return fmt.Errorf("script effect without script")
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}
