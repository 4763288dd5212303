package rules

import (
	"strings"

	"go.uber.org/zap"
)

// Kind tags a predicate. Data files may use either case ("HAVE_ITEM").
type Kind string

const (
	KindHaveItem    Kind = "have_item"
	KindStatAtLeast Kind = "stat_at_least"
	KindStatBelow   Kind = "stat_below"
	KindEraIs       Kind = "era_is"
	KindScript      Kind = "script"
	KindAll         Kind = "all"
	KindAny         Kind = "any"
	KindNot         Kind = "not"
)

// Predicate is a small tagged expression evaluated against one entity.
// Dialogue conditions and quest objectives share it.
type Predicate struct {
	Kind   Kind        `yaml:"kind" json:"kind"`
	Target string      `yaml:"target,omitempty" json:"target,omitempty"`
	Count  int         `yaml:"count,omitempty" json:"count,omitempty"`
	Value  float64     `yaml:"value,omitempty" json:"value,omitempty"`
	Script string      `yaml:"script,omitempty" json:"script,omitempty"`
	Args   []Predicate `yaml:"args,omitempty" json:"args,omitempty"`
}

// Normalized returns the lower-case form of the kind.
func (k Kind) Normalized() Kind {
	return Kind(strings.ToLower(string(k)))
}

// Capabilities is what a predicate may ask about its subject.
type Capabilities interface {
	// HasItem reports whether the inventory holds at least count records of defID.
	HasItem(defID string, count int) bool
	// Stat reads a named number: a need gauge ("hunger"...), "reputation",
	// "currency" or "load".
	Stat(name string) (float64, bool)
	Era() string
}

// ScriptRunner evaluates a named scripted predicate.
type ScriptRunner interface {
	Predicate(fn string, subject Capabilities) (bool, error)
}

// Evaluator evaluates predicates. Scripted predicates need a runner;
// without one they are false.
type Evaluator struct {
	scripts ScriptRunner
	log     *zap.Logger
}

func NewEvaluator(scripts ScriptRunner, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{scripts: scripts, log: log}
}

// Eval returns whether p holds for subject. Malformed predicates are false.
func (e *Evaluator) Eval(p Predicate, subject Capabilities) bool {
	switch p.Kind.Normalized() {
	case KindHaveItem:
		n := p.Count
		if n <= 0 {
			n = 1
		}
		return subject.HasItem(p.Target, n)
	case KindStatAtLeast:
		v, ok := subject.Stat(p.Target)
		return ok && v >= p.Value
	case KindStatBelow:
		v, ok := subject.Stat(p.Target)
		return ok && v < p.Value
	case KindEraIs:
		return strings.EqualFold(subject.Era(), p.Target)
	case KindScript:
		if e.scripts == nil {
			e.log.Warn("scripted predicate without script engine", zap.String("script", p.Script))
			return false
		}
		ok, err := e.scripts.Predicate(p.Script, subject)
		if err != nil {
			e.log.Error("scripted predicate failed", zap.String("script", p.Script), zap.Error(err))
			return false
		}
		return ok
	case KindAll:
		return e.All(p.Args, subject)
	case KindAny:
		for _, a := range p.Args {
			if e.Eval(a, subject) {
				return true
			}
		}
		return false
	case KindNot:
		return len(p.Args) == 1 && !e.Eval(p.Args[0], subject)
	}
	e.log.Debug("unknown predicate kind", zap.String("kind", string(p.Kind)))
	return false
}

// All reports whether every predicate holds. An empty list holds.
func (e *Evaluator) All(ps []Predicate, subject Capabilities) bool {
	for _, p := range ps {
		if !e.Eval(p, subject) {
			return false
		}
	}
	return true
}
