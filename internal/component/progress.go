package component

// Quest tracks an entity's active and completed quests.
type Quest struct {
	Active    map[string]*QuestProgress `json:"active"`
	Completed []string                  `json:"completed"`
}

// QuestProgress is the current stage of one quest and which of that
// stage's objectives (by index) are done.
type QuestProgress struct {
	Stage      string       `json:"stage"`
	Objectives map[int]bool `json:"objectives"`
}

// Contagion is the set of transmissible conditions an entity carries.
type Contagion struct {
	Conditions map[string]Condition `json:"conditions"`
}

// Condition is copied by value onto a new carrier.
type Condition struct {
	Transmissibility float64 `json:"transmissibility"`
	Severity         float64 `json:"severity,omitempty"`
}
