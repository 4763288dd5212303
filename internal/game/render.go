package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/MTvrimPossible/simulation-game/internal/component"
	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/MTvrimPossible/simulation-game/internal/world"
)

// Frame is everything a renderer needs for one screen. It is plain data so
// it can be shipped over the wire as JSON.
type Frame struct {
	Map       []string           `json:"map"`
	Entities  []world.Renderable `json:"entities"`
	Turn      int64              `json:"turn"`
	Clock     string             `json:"clock"`
	Era       string             `json:"era"`
	Needs     map[string]float64 `json:"needs,omitempty"`
	Money     int                `json:"money"`
	Load      float64            `json:"load"`
	Inventory []string           `json:"inventory,omitempty"`
	Dialogue  []string           `json:"dialogue,omitempty"`
	Status    string             `json:"status"`
	Paused    bool               `json:"paused"`
	Over      bool               `json:"over"`
}

// Renderer draws frames. Implementations must not keep the frame.
type Renderer interface {
	Render(f Frame) error
}

// BuildFrame captures the visible state of w.
func BuildFrame(w *world.World, status string, dialogue []string) Frame {
	f := Frame{
		Entities: w.Renderables(),
		Turn:     w.Turn,
		Clock:    w.Clock.String(),
		Era:      string(w.Era),
		Dialogue: dialogue,
		Status:   status,
		Paused:   w.Paused,
	}
	if w.Map != nil {
		f.Map = w.Map.Rows()
	}
	store := w.Store()
	if needs, ok := ecs.Get[component.Needs](store, w.Player); ok {
		f.Needs = make(map[string]float64, component.NeedCount)
		for k := component.NeedKind(0); k < component.NeedCount; k++ {
			f.Needs[k.String()] = needs.Values[k]
		}
	}
	if c, ok := ecs.Get[component.Currency](store, w.Player); ok {
		f.Money = c.Amount
	}
	if l, ok := ecs.Get[component.IrreversibleLoad](store, w.Player); ok {
		f.Load = l.Amount
	}
	if inv, ok := ecs.Get[component.Inventory](store, w.Player); ok {
		for _, it := range inv.Items {
			name := it.Name
			if it.Stolen {
				name += " (stolen)"
			}
			f.Inventory = append(f.Inventory, name)
		}
	}
	return f
}

// Compose stamps entities over a copy of the map. Off-map entities are
// skipped; later entities draw over earlier ones.
func Compose(f Frame) []string {
	buf := make([][]rune, len(f.Map))
	for y, row := range f.Map {
		buf[y] = []rune(row)
	}
	for _, e := range f.Entities {
		if e.Y < 0 || e.Y >= len(buf) || e.X < 0 || e.X >= len(buf[e.Y]) {
			continue
		}
		r := []rune(e.Tile)
		if len(r) == 0 {
			continue
		}
		buf[e.Y][e.X] = r[0]
	}
	out := make([]string, len(buf))
	for i, row := range buf {
		out[i] = string(row)
	}
	return out
}

// ASCIIRenderer writes frames as plain text.
type ASCIIRenderer struct {
	out io.Writer
}

func NewASCIIRenderer(out io.Writer) *ASCIIRenderer {
	return &ASCIIRenderer{out: out}
}

func (r *ASCIIRenderer) Render(f Frame) error {
	var b strings.Builder
	b.WriteString("\033[H\033[2J")
	for _, row := range Compose(f) {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s  turn %d  era %s  $%d  load %.1f\n", f.Clock, f.Turn, f.Era, f.Money, f.Load)
	if len(f.Needs) > 0 {
		for k := component.NeedKind(0); k < component.NeedCount; k++ {
			fmt.Fprintf(&b, "%s %3.0f  ", k, f.Needs[k.String()])
		}
		b.WriteByte('\n')
	}
	for i, name := range f.Inventory {
		fmt.Fprintf(&b, "[%d] %s  ", i+1, name)
	}
	if len(f.Inventory) > 0 {
		b.WriteByte('\n')
	}
	for _, line := range f.Dialogue {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	switch {
	case f.Over:
		b.WriteString("*** ")
	case f.Paused:
		b.WriteString("[paused] ")
	}
	b.WriteString(f.Status)
	b.WriteByte('\n')
	_, err := io.WriteString(r.out, b.String())
	return err
}
