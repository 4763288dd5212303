package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"gopkg.in/yaml.v3"
)

// StageComplete is the next_stage value that finishes a quest.
const StageComplete = "complete"

type QuestDef struct {
	ID     string               `yaml:"id"`
	Title  string               `yaml:"title"`
	Start  string               `yaml:"start"`
	Stages map[string]*StageDef `yaml:"stages"`
}

// StageDef lists the objectives that must all hold before moving to Next.
type StageDef struct {
	Objectives []Objective `yaml:"objectives"`
	Next       string      `yaml:"next_stage"`
}

// Objective is a predicate plus the line shown in the quest log.
type Objective struct {
	Text            string `yaml:"text"`
	rules.Predicate `yaml:",inline"`
}

type questListFile struct {
	Quests []QuestDef `yaml:"quests"`
}

// QuestTable holds quest definitions indexed by ID.
type QuestTable struct {
	quests map[string]*QuestDef
}

// LoadQuestTable loads quests and checks every stage link resolves.
func LoadQuestTable(path string) (*QuestTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quest_list: %w", err)
	}
	var f questListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse quest_list: %w", err)
	}
	t := &QuestTable{quests: make(map[string]*QuestDef, len(f.Quests))}
	for i := range f.Quests {
		q := &f.Quests[i]
		if q.ID == "" {
			return nil, fmt.Errorf("quest_list entry %d: missing id", i)
		}
		if _, ok := q.Stages[q.Start]; !ok {
			return nil, fmt.Errorf("quest %s: start stage %q not defined", q.ID, q.Start)
		}
		for name, st := range q.Stages {
			if st == nil {
				return nil, fmt.Errorf("quest %s: stage %q is empty", q.ID, name)
			}
			if st.Next == StageComplete {
				continue
			}
			if _, ok := q.Stages[st.Next]; !ok {
				return nil, fmt.Errorf("quest %s: stage %q links to unknown stage %q", q.ID, name, st.Next)
			}
		}
		t.quests[q.ID] = q
	}
	return t, nil
}

// Get returns a quest by ID, or nil if not found.
func (t *QuestTable) Get(id string) *QuestDef {
	return t.quests[id]
}

// Stage returns the named stage of a quest, or nil.
func (t *QuestTable) Stage(questID, stage string) *StageDef {
	q := t.quests[questID]
	if q == nil {
		return nil
	}
	return q.Stages[stage]
}

// IDs returns every quest id, sorted.
func (t *QuestTable) IDs() []string {
	ids := make([]string, 0, len(t.quests))
	for id := range t.quests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of loaded quests.
func (t *QuestTable) Count() int {
	return len(t.quests)
}
