package world

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MTvrimPossible/simulation-game/internal/core/ecs"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// ErrSerialization marks a snapshot that could not be produced or applied.
// A failed Deserialize leaves the world exactly as it was.
var ErrSerialization = errors.New("serialization failure")

// Snapshot is the pure-data form of a World: the store plus the promoted
// world-level fields. Systems are never part of it.
type Snapshot struct {
	Version int `json:"version"`
	ecs.State
	Player ecs.EntityID `json:"playerEntityId"`
	Map    MapRef       `json:"mapReference"`
	Turn   int64        `json:"turn"`
	Clock  Clock        `json:"clock"`
	Era    Era          `json:"era"`
}

// envelope guards the payload with a checksum so truncated or hand-edited
// saves are rejected before anything is decoded into the world.
type envelope struct {
	Checksum uint64          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// Snapshot captures the current state without encoding it.
func (w *World) Snapshot() (Snapshot, error) {
	st, err := w.store.Export()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	s := Snapshot{
		Version: SnapshotVersion,
		State:   st,
		Player:  w.Player,
		Turn:    w.Turn,
		Clock:   w.Clock,
		Era:     w.Era,
	}
	if w.Map != nil {
		s.Map = w.Map.Ref
	}
	return s, nil
}

// Serialize encodes the world into a transportable blob.
func (w *World) Serialize() ([]byte, error) {
	s, err := w.Snapshot()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %v", ErrSerialization, err)
	}
	blob, err := json.Marshal(envelope{Checksum: xxhash.Sum64(payload), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("%w: encode envelope: %v", ErrSerialization, err)
	}
	return blob, nil
}

// Deserialize validates blob and then replaces the store, id counter,
// player, map, turn, clock and era in one step. Registered systems stay;
// their private queues are reset.
func (w *World) Deserialize(blob []byte) error {
	s, err := decodeSnapshot(blob)
	if err != nil {
		return err
	}

	store, err := w.store.Restore(s.State)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if !s.Player.IsZero() && !store.Alive(s.Player) {
		return fmt.Errorf("%w: player %d is not an entity", ErrSerialization, s.Player)
	}
	if !s.Era.Valid() {
		return fmt.Errorf("%w: invalid era %q", ErrSerialization, s.Era)
	}
	if !s.Clock.Valid() {
		return fmt.Errorf("%w: clock out of range (%s)", ErrSerialization, s.Clock)
	}
	tm, err := w.resolveMap(s.Map)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	// Everything validated; commit.
	w.store = store
	w.Player = s.Player
	w.Map = tm
	w.Turn = s.Turn
	w.Clock = s.Clock
	w.Era = s.Era
	w.Action = Action{}
	w.runner.Reset()

	w.log.Info("world loaded",
		zap.Int("entities", store.Pool().Len()),
		zap.Uint64("player", uint64(s.Player)),
		zap.Int64("turn", s.Turn))
	return nil
}

func decodeSnapshot(blob []byte) (Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode envelope: %v", ErrSerialization, err)
	}
	if len(env.Payload) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty payload", ErrSerialization)
	}
	if sum := xxhash.Sum64(env.Payload); sum != env.Checksum {
		return Snapshot{}, fmt.Errorf("%w: checksum mismatch (%x != %x)", ErrSerialization, sum, env.Checksum)
	}
	var s Snapshot
	if err := json.Unmarshal(env.Payload, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode snapshot: %v", ErrSerialization, err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrSerialization, s.Version)
	}
	if s.Components == nil {
		return Snapshot{}, fmt.Errorf("%w: missing components", ErrSerialization)
	}
	return s, nil
}

func (w *World) resolveMap(ref MapRef) (*TileMap, error) {
	if w.Map != nil && w.Map.Ref == ref {
		return w.Map, nil
	}
	if w.Map == nil && ref == (MapRef{}) {
		return nil, nil
	}
	if w.maps == nil {
		return nil, fmt.Errorf("no map provider for %q", ref.ID)
	}
	tm, err := w.maps.Load(ref)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", ref.ID, err)
	}
	return tm, nil
}
