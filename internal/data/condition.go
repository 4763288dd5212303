package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConditionDef is a transmissible condition.
type ConditionDef struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Transmissibility float64 `yaml:"transmissibility"`
	Severity         float64 `yaml:"severity"`
}

type conditionListFile struct {
	Conditions []ConditionDef `yaml:"conditions"`
}

// ConditionTable holds condition definitions indexed by ID.
type ConditionTable struct {
	conditions map[string]*ConditionDef
}

// LoadConditionTable loads conditions from a YAML file.
func LoadConditionTable(path string) (*ConditionTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read condition_list: %w", err)
	}
	var f conditionListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse condition_list: %w", err)
	}
	t := &ConditionTable{conditions: make(map[string]*ConditionDef, len(f.Conditions))}
	for i := range f.Conditions {
		c := &f.Conditions[i]
		if c.Transmissibility < 0 || c.Transmissibility > 1 {
			return nil, fmt.Errorf("condition %s: transmissibility %v out of [0,1]", c.ID, c.Transmissibility)
		}
		t.conditions[c.ID] = c
	}
	return t, nil
}

// Get returns a condition by ID, or nil if not found.
func (t *ConditionTable) Get(id string) *ConditionDef {
	return t.conditions[id]
}

// Count returns the number of loaded conditions.
func (t *ConditionTable) Count() int {
	return len(t.conditions)
}
