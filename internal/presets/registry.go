package presets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/world"
)

const presetsFile = "presets.json"

// ErrUnknownPreset is returned by Registry.Get for names that are not loaded.
var ErrUnknownPreset = errors.New("presets: unknown preset")

// Palette holds hex colors used when previewing a map.
type Palette struct {
	Floor    string `json:"floor"`
	Corridor string `json:"corridor"`
	Wall     string `json:"wall"`
}

// Preset is a named set of generation parameters.
type Preset struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Candidates  int                   `json:"candidates"`
	Radius      float64               `json:"radius"`
	Increment   float64               `json:"increment"`
	Rooms       world.RoomConfig      `json:"rooms"`
	TileSize    float64               `json:"tileSize"`
	GridWidth   int                   `json:"gridWidth"`
	GridHeight  int                   `json:"gridHeight"`
	Diagonal    raster.DiagonalPolicy `json:"diagonal"`
	Palette     Palette               `json:"palette"`
}

// Params converts the preset into generation parameters for seed.
func (p *Preset) Params(seed int64) world.Params {
	return world.Params{
		Candidates: p.Candidates,
		Radius:     p.Radius,
		Rooms:      p.Rooms,
		Increment:  p.Increment,
		Seed:       seed,
		TileSize:   p.TileSize,
		GridWidth:  p.GridWidth,
		GridHeight: p.GridHeight,
		Diagonal:   p.Diagonal,
	}
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Default string   `json:"default"`
	Presets []Preset `json:"presets"`
}

// Registry holds loaded presets and provides lookup utilities.
type Registry struct {
	byName      map[string]*Preset
	all         []Preset
	defaultName string
}

// NewRegistry creates a registry from preset definitions. defaultName must
// name one of them.
func NewRegistry(presets []Preset, defaultName string) (*Registry, error) {
	r := &Registry{
		byName:      make(map[string]*Preset, len(presets)),
		all:         presets,
		defaultName: defaultName,
	}
	for i := range presets {
		if _, dup := r.byName[presets[i].Name]; dup {
			return nil, fmt.Errorf("presets: duplicate preset %q", presets[i].Name)
		}
		r.byName[presets[i].Name] = &presets[i]
	}
	if _, ok := r.byName[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownPreset, defaultName)
	}
	return r, nil
}

// LoadRegistry loads the registry from the embedded presets.json.
func LoadRegistry() (*Registry, error) {
	file, err := Load[PresetsFile](presetsFile)
	if err != nil {
		return nil, err
	}
	if len(file.Presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewRegistry(file.Presets, file.Default)
}

// MustLoadRegistry loads the registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Get returns the preset with the given name. The empty name selects the
// default preset.
func (r *Registry) Get(name string) (*Preset, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Default returns the default preset.
func (r *Registry) Default() *Preset {
	return r.byName[r.defaultName]
}

// Names returns the preset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all preset definitions in file order.
func (r *Registry) All() []Preset {
	return r.all
}

// Count returns the number of presets in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
