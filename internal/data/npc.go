package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NpcTemplate holds static data for an NPC type loaded from YAML.
type NpcTemplate struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Tile     string          `yaml:"tile"`
	Color    string          `yaml:"color"`
	Dialogue string          `yaml:"dialogue"`
	Money    int             `yaml:"money"`
	Schedule []ScheduleEntry `yaml:"schedule"`
	Carries  []string        `yaml:"carries"`  // item ids owned by this NPC
	Infected []string        `yaml:"infected"` // condition ids
}

// ScheduleEntry is one timed task; Time is "HHMM".
type ScheduleEntry struct {
	Time   string `yaml:"time"`
	Action string `yaml:"action"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

// VendorTemplate describes a vending machine or shop counter.
type VendorTemplate struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	Tile  string      `yaml:"tile"`
	Color string      `yaml:"color"`
	Stock []StockItem `yaml:"stock"`
}

type StockItem struct {
	ItemID   string `yaml:"item_id"`
	Price    int    `yaml:"price"`    // 0 falls back to the item's price
	Quantity int    `yaml:"quantity"` // 0 = unlimited
}

type npcListFile struct {
	Npcs    []NpcTemplate    `yaml:"npcs"`
	Vendors []VendorTemplate `yaml:"vendors"`
}

// NpcTable holds NPC and vendor templates indexed by ID, in file order.
type NpcTable struct {
	templates map[string]*NpcTemplate
	order     []string
	vendors   []*VendorTemplate
}

// LoadNpcTable loads NPC templates from a YAML file.
func LoadNpcTable(path string) (*NpcTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npc_list: %w", err)
	}
	var f npcListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse npc_list: %w", err)
	}
	t := &NpcTable{templates: make(map[string]*NpcTemplate, len(f.Npcs))}
	for i := range f.Npcs {
		npc := &f.Npcs[i]
		if npc.ID == "" {
			return nil, fmt.Errorf("npc_list entry %d: missing id", i)
		}
		for _, s := range npc.Schedule {
			if !validTimeKey(s.Time) {
				return nil, fmt.Errorf("npc %s: bad schedule time %q", npc.ID, s.Time)
			}
		}
		t.templates[npc.ID] = npc
		t.order = append(t.order, npc.ID)
	}
	for i := range f.Vendors {
		t.vendors = append(t.vendors, &f.Vendors[i])
	}
	return t, nil
}

// Get returns an NPC template by ID, or nil if not found.
func (t *NpcTable) Get(id string) *NpcTemplate {
	return t.templates[id]
}

// All returns the templates in file order.
func (t *NpcTable) All() []*NpcTemplate {
	out := make([]*NpcTemplate, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.templates[id])
	}
	return out
}

func (t *NpcTable) Vendors() []*VendorTemplate { return t.vendors }

// Count returns the number of loaded templates.
func (t *NpcTable) Count() int {
	return len(t.templates)
}

func validTimeKey(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[2]-'0')*10 + int(s[3]-'0')
	return hh < 24 && mm < 60
}
