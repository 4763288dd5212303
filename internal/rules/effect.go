package rules

// EffectKind tags an item-use or dialogue effect.
type EffectKind string

const (
	EffectSatisfyNeed EffectKind = "satisfy_need"
	EffectAddLoad     EffectKind = "add_load"
	EffectSocial      EffectKind = "social"
	EffectScript      EffectKind = "script"
)

// Effect is applied by whichever system owns its kind: needs by the item
// effect system, load by the irreversible load system, social actions by
// reputation.
type Effect struct {
	Kind   EffectKind `yaml:"kind" json:"kind"`
	Target string     `yaml:"target,omitempty" json:"target,omitempty"`
	Amount float64    `yaml:"amount,omitempty" json:"amount,omitempty"`
	Script string     `yaml:"script,omitempty" json:"script,omitempty"`
}

// Sum adds up the Amount of every effect of kind k.
func Sum(effects []Effect, k EffectKind) float64 {
	var total float64
	for _, e := range effects {
		if e.Kind == k {
			total += e.Amount
		}
	}
	return total
}
