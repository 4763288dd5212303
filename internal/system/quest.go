package system

import (
	"sort"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/data"
	"github.com/MTvrimPossible/simulation-game/internal/rules"
	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// QuestSystem checks objectives of every active quest's current stage and
// moves quests forward. A completed objective never goes back to incomplete.
type QuestSystem struct {
	quests QuestLookup
	eval   *rules.Evaluator
	log    *zap.Logger
}

func NewQuestSystem(quests QuestLookup, eval *rules.Evaluator, log *zap.Logger) *QuestSystem {
	return &QuestSystem{quests: quests, eval: eval, log: log}
}

func (s *QuestSystem) Name() string { return "quest" }
func (s *QuestSystem) Required() []ecs.ComponentType {
	return []ecs.ComponentType{component.TypeQuest}
}

func (s *QuestSystem) Update(w *world.World, entities []ecs.EntityID, turns int) {
	if turns <= 0 {
		return
	}
	for _, id := range entities {
		q, ok := ecs.Get[component.Quest](w.Store(), id)
		if !ok || len(q.Active) == 0 {
			continue
		}
		ids := make([]string, 0, len(q.Active))
		for qid := range q.Active {
			ids = append(ids, qid)
		}
		sort.Strings(ids)
		for _, qid := range ids {
			s.progress(w, id, q, qid)
		}
	}
}

func (s *QuestSystem) progress(w *world.World, id ecs.EntityID, q *component.Quest, qid string) {
	prog := q.Active[qid]
	if prog == nil {
		return
	}
	stage := s.quests.Stage(qid, prog.Stage)
	if stage == nil {
		s.log.Debug("unknown quest stage", zap.String("quest", qid), zap.String("stage", prog.Stage))
		return
	}
	if prog.Objectives == nil {
		prog.Objectives = make(map[int]bool)
	}

	subject := w.Subject(id)
	done := true
	for i, obj := range stage.Objectives {
		if prog.Objectives[i] {
			continue
		}
		if s.eval.Eval(obj.Predicate, subject) {
			prog.Objectives[i] = true
			s.log.Info("objective complete", zap.String("quest", qid), zap.String("objective", obj.Text))
			continue
		}
		done = false
	}
	if !done {
		return
	}

	if stage.Next == data.StageComplete {
		delete(q.Active, qid)
		q.Completed = append(q.Completed, qid)
		s.log.Info("quest completed", zap.String("quest", qid), zap.Uint64("entity", uint64(id)))
		return
	}
	prog.Stage = stage.Next
	prog.Objectives = make(map[int]bool)
}
