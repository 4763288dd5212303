package component

// Needs stores the seven physiological/psychological gauges of an entity
// (0 = critical, 100 = satisfied) and the points each loses per turn.
// Mutated only by systems.
type Needs struct {
	Values [NeedCount]float64 `json:"values"`
	Decay  [NeedCount]float64 `json:"decay"`
}

// NeedKind indexes Needs.Values and Needs.Decay. The enumeration order is
// also the tie-break order when picking the strongest need.
type NeedKind int

const (
	NeedHunger NeedKind = iota
	NeedThirst
	NeedEnergy
	NeedBladder
	NeedHygiene
	NeedSocial
	NeedFun
	NeedCount
)

const NeedMax = 100.0

var needNames = [NeedCount]string{"hunger", "thirst", "energy", "bladder", "hygiene", "social", "fun"}

func (k NeedKind) String() string {
	if k < 0 || k >= NeedCount {
		return "unknown"
	}
	return needNames[k]
}

// ParseNeed maps a data-file need name to its kind.
func ParseNeed(s string) (NeedKind, bool) {
	for i, n := range needNames {
		if n == s {
			return NeedKind(i), true
		}
	}
	return 0, false
}

// NewNeeds returns full gauges with the default per-turn decay rates.
func NewNeeds() Needs {
	n := Needs{
		Decay: [NeedCount]float64{
			NeedHunger:  0.05,
			NeedThirst:  0.08,
			NeedEnergy:  0.03,
			NeedBladder: 0.06,
			NeedHygiene: 0.02,
			NeedSocial:  0.04,
			NeedFun:     0.05,
		},
	}
	for i := range n.Values {
		n.Values[i] = NeedMax
	}
	return n
}

// IrreversibleLoad is an accumulated stat that never decreases. It sets the
// odds of permanent failure when the player dies.
type IrreversibleLoad struct {
	Amount float64 `json:"amount"`
}

// Reputation is the social standing of an entity, clamped to [-100, 100].
type Reputation struct {
	Value int `json:"value"`
}

// Dialogue references the dialogue tree an entity speaks from.
type Dialogue struct {
	TreeID string `json:"treeId"`
}

// Amenity tags a world object as satisfying one or more needs.
type Amenity struct {
	Satisfies []NeedKind `json:"satisfies"`
}
