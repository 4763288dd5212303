package data

import (
	"fmt"
	"os"

	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"gopkg.in/yaml.v3"
)

// DialogueTree is a graph of nodes; an option with an empty Next ends it.
type DialogueTree struct {
	ID    string                   `yaml:"id"`
	Root  string                   `yaml:"root"`
	Nodes map[string]*DialogueNode `yaml:"nodes"`
}

type DialogueNode struct {
	Text    string           `yaml:"text"`
	Options []DialogueOption `yaml:"options"`
}

// DialogueOption is shown only when every condition holds.
type DialogueOption struct {
	Text       string            `yaml:"text"`
	Conditions []rules.Predicate `yaml:"conditions"`
	Effects    []rules.Effect    `yaml:"effects"`
	Next       string            `yaml:"next"`
}

type dialogueListFile struct {
	Trees []DialogueTree `yaml:"dialogue"`
}

// DialogueTable holds dialogue trees indexed by ID.
type DialogueTable struct {
	trees map[string]*DialogueTree
}

// LoadDialogueTable loads dialogue trees and checks node links.
func LoadDialogueTable(path string) (*DialogueTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialogue_list: %w", err)
	}
	var f dialogueListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse dialogue_list: %w", err)
	}
	t := &DialogueTable{trees: make(map[string]*DialogueTree, len(f.Trees))}
	for i := range f.Trees {
		tr := &f.Trees[i]
		if _, ok := tr.Nodes[tr.Root]; !ok {
			return nil, fmt.Errorf("dialogue %s: root %q not defined", tr.ID, tr.Root)
		}
		for name, n := range tr.Nodes {
			if n == nil {
				return nil, fmt.Errorf("dialogue %s: node %q is empty", tr.ID, name)
			}
			for _, opt := range n.Options {
				for _, eff := range opt.Effects {
					if err := validateEffect(eff); err != nil {
						return nil, fmt.Errorf("dialogue %s node %s: %w", tr.ID, name, err)
					}
				}
				if opt.Next == "" {
					continue
				}
				if _, ok := tr.Nodes[opt.Next]; !ok {
					return nil, fmt.Errorf("dialogue %s: node %q links to unknown node %q", tr.ID, name, opt.Next)
				}
			}
		}
		t.trees[tr.ID] = tr
	}
	return t, nil
}

// Get returns a dialogue tree by ID, or nil if not found.
func (t *DialogueTable) Get(id string) *DialogueTree {
	return t.trees[id]
}

// Count returns the number of loaded trees.
func (t *DialogueTable) Count() int {
	return len(t.trees)
}
