package component

// Position holds the grid coordinates of an entity.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Destination is the tile an entity is walking to. Removed on arrival.
type Destination struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Visual is how an entity appears on the map: one glyph and a CSS color.
type Visual struct {
	Tile  string `json:"tile"`
	Color string `json:"color"`
}

// Schedule maps a zero-padded "HHMM" time key to a task.
type Schedule struct {
	Tasks         map[string]Task `json:"tasks"`
	CurrentAction string          `json:"currentAction,omitempty"`
}

const TaskMoveTo = "moveTo"

type Task struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}
