package data

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MTvrimPossible/simulation-game/internal/world"
	"gopkg.in/yaml.v3"
)

// MapInfo holds metadata for a hand-drawn map, loaded from maps.yaml.
type MapInfo struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	File   string `yaml:"file"` // text grid relative to the data dir
	StartX int    `yaml:"start_x"`
	StartY int    `yaml:"start_y"`
}

type mapEntry struct {
	info MapInfo
	rows []string
}

// MapDataTable serves hand-drawn maps. It implements world.MapProvider, so a
// saved reference to one of these maps reloads the same grid.
type MapDataTable struct {
	maps map[string]*mapEntry
}

var _ world.MapProvider = (*MapDataTable)(nil)

type mapListFile struct {
	Maps []MapInfo `yaml:"maps"`
}

// LoadMapData loads map metadata from YAML and tile grids from text files
// under baseDir. A missing list file yields an empty table.
func LoadMapData(yamlPath, baseDir string) (*MapDataTable, error) {
	table := &MapDataTable{maps: make(map[string]*mapEntry)}
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, fmt.Errorf("read map list %s: %w", yamlPath, err)
	}
	var file mapListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse map list: %w", err)
	}
	for _, info := range file.Maps {
		rows, err := loadTileFile(filepath.Join(baseDir, info.File))
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", info.ID, err)
		}
		table.maps[info.ID] = &mapEntry{info: info, rows: rows}
	}
	return table, nil
}

// loadTileFile reads one grid row per line. Lines starting with ';' are
// comments, since '#' is a wall tile.
func loadTileFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r ")
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		rows = append(rows, line)
	}
	return rows, scanner.Err()
}

// Count returns the number of maps loaded with tile data.
func (t *MapDataTable) Count() int {
	return len(t.maps)
}

// GetInfo returns metadata for a map, or nil if not found.
func (t *MapDataTable) GetInfo(id string) *MapInfo {
	e := t.maps[id]
	if e == nil {
		return nil
	}
	return &e.info
}

// Load builds a fresh grid for ref. Each call returns a new TileMap so
// runtime edits never leak back into the table.
func (t *MapDataTable) Load(ref world.MapRef) (*world.TileMap, error) {
	e := t.maps[ref.ID]
	if e == nil {
		return nil, fmt.Errorf("unknown map %q", ref.ID)
	}
	return world.NewTileMap(world.MapRef{ID: ref.ID, Seed: ref.Seed}, e.rows)
}
