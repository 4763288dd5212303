package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/MTvrimPossible/simulation-game/internal/world"
	"go.uber.org/zap"
)

// Status is the outcome of a save or load, shown to the player.
type Status struct {
	OK      bool
	Message string
}

// SaveLoad moves whole-world snapshots between a World and a slot store.
type SaveLoad struct {
	store SlotStore
	slot  string
	log   *zap.Logger
}

func NewSaveLoad(store SlotStore, slot string, log *zap.Logger) *SaveLoad {
	if log == nil {
		log = zap.NewNop()
	}
	return &SaveLoad{store: store, slot: slot, log: log}
}

func (s *SaveLoad) Slot() string { return s.slot }

// Save serializes w into the slot.
func (s *SaveLoad) Save(ctx context.Context, w *world.World) (Status, error) {
	return s.SaveTo(ctx, s.slot, w)
}

// SaveTo serializes w into an arbitrary slot, e.g. the autosave.
func (s *SaveLoad) SaveTo(ctx context.Context, slot string, w *world.World) (Status, error) {
	blob, err := w.Serialize()
	if err != nil {
		s.log.Error("serialize world", zap.Error(err))
		return Status{Message: "Save failed."}, err
	}
	if err := s.store.Set(ctx, slot, blob); err != nil {
		s.log.Error("write save slot", zap.String("slot", slot), zap.Error(err))
		return Status{Message: "Save failed."}, fmt.Errorf("write slot %s: %w", slot, err)
	}
	s.log.Info("game saved", zap.String("slot", slot), zap.Int("bytes", len(blob)), zap.Int64("turn", w.Turn))
	return Status{OK: true, Message: "Game saved."}, nil
}

// Load replaces the world from the slot. The world is paused while loading
// and unpaused only on success; on any failure it is left exactly as it was,
// including its paused flag.
func (s *SaveLoad) Load(ctx context.Context, w *world.World) (Status, error) {
	blob, err := s.store.Get(ctx, s.slot)
	if errors.Is(err, ErrNotFound) {
		return Status{Message: "No save found."}, err
	}
	if err != nil {
		s.log.Error("read save slot", zap.String("slot", s.slot), zap.Error(err))
		return Status{Message: "Load failed."}, fmt.Errorf("read slot %s: %w", s.slot, err)
	}

	wasPaused := w.Paused
	w.Paused = true
	if err := w.Deserialize(blob); err != nil {
		w.Paused = wasPaused
		s.log.Error("load failed", zap.String("slot", s.slot), zap.Error(err))
		return Status{Message: "Load failed: save is corrupt."}, err
	}
	w.Paused = false
	return Status{OK: true, Message: "Game loaded."}, nil
}
