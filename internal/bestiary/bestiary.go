// Package bestiary holds the entity templates a session can spawn.
package bestiary

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"gopkg.in/yaml.v3"
)

// Template is static data for one kind of entity. Stats is nil for
// objects that never act.
type Template struct {
	Key   string         `yaml:"key"`
	Name  string         `yaml:"name"`
	Type  string         `yaml:"type"`
	Icon  string         `yaml:"icon"`
	Stats *TemplateStats `yaml:"stats"`
}

// TemplateStats is the stat block a spawned entity starts with
type TemplateStats struct {
	HP         int `yaml:"hp"`
	AC         int `yaml:"ac"`
	Initiative int `yaml:"initiative"`
}

// SpawnEntry places one template on the map at session start
type SpawnEntry struct {
	ID       string `yaml:"id"`
	Template string `yaml:"template"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
}

type bestiaryFile struct {
	Templates []Template   `yaml:"templates"`
	Spawns    []SpawnEntry `yaml:"spawns"`
}

// Spawn builds an entity from the template
func (t Template) Spawn(id string, pos entities.Position) (*entities.Entity, error) {
	entityType, err := entities.ParseEntityType(t.Type)
	if err != nil {
		return nil, dnderr.Wrapf(err, "template %s", t.Key)
	}
	e := &entities.Entity{
		ID:       id,
		Name:     t.Name,
		Type:     entityType,
		Icon:     t.Icon,
		Position: pos,
	}
	if t.Stats != nil {
		e.Stats = &entities.EntityStats{
			HP:         t.Stats.HP,
			MaxHP:      t.Stats.HP,
			AC:         t.Stats.AC,
			Initiative: t.Stats.Initiative,
		}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (t Template) validate() error {
	if t.Key == "" {
		return dnderr.Validationf("template without key")
	}
	if t.Name == "" {
		return dnderr.Validationf("template %s: name is required", t.Key)
	}
	if _, err := entities.ParseEntityType(t.Type); err != nil {
		return dnderr.Wrapf(err, "template %s", t.Key)
	}
	if t.Stats != nil && t.Stats.HP < 0 {
		return dnderr.Validationf("template %s: negative hp", t.Key)
	}
	return nil
}

// Bestiary holds templates indexed by key plus the default spawn list
type Bestiary struct {
	mu        sync.RWMutex
	templates map[string]Template
	spawns    []SpawnEntry
}

// New creates an empty bestiary
func New() *Bestiary {
	return &Bestiary{templates: make(map[string]Template)}
}

// Builtin returns the bestiary every session starts with: a goblin
// scout, a skeleton archer and a treasure chest
func Builtin() *Bestiary {
	b := New()
	for _, t := range []Template{
		{Key: "goblin", Name: "Goblin Scout", Type: string(entities.EntityTypeEnemy), Icon: "🧟",
			Stats: &TemplateStats{HP: 7, AC: 15, Initiative: 14}},
		{Key: "skeleton", Name: "Skeleton Archer", Type: string(entities.EntityTypeEnemy), Icon: "💀",
			Stats: &TemplateStats{HP: 13, AC: 13, Initiative: 16}},
		{Key: "chest", Name: "Treasure Chest", Type: string(entities.EntityTypeObject), Icon: "📦"},
	} {
		if err := b.Add(t); err != nil {
			panic(err)
		}
	}
	b.spawns = []SpawnEntry{
		{ID: "goblin-1", Template: "goblin", X: 5, Y: 5},
		{ID: "skeleton-1", Template: "skeleton", X: 10, Y: 8},
		{ID: "chest-1", Template: "chest", X: 7, Y: 15},
	}
	return b
}

// Load reads templates and spawns from a YAML file
func Load(path string) (*Bestiary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bestiary: %w", err)
	}
	return Parse(data)
}

// Parse reads templates and spawns from YAML
func Parse(data []byte) (*Bestiary, error) {
	var f bestiaryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "parse bestiary")
	}

	b := New()
	for _, t := range f.Templates {
		if err := b.Add(t); err != nil {
			return nil, err
		}
	}
	for _, s := range f.Spawns {
		if _, ok := b.templates[s.Template]; !ok {
			return nil, dnderr.Validationf("spawn %s uses unknown template %q", s.ID, s.Template)
		}
	}
	b.spawns = f.Spawns
	return b, nil
}

// Add registers a template, replacing one with the same key
func (b *Bestiary) Add(t Template) error {
	if err := t.validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.templates[t.Key] = t
	return nil
}

// Get returns the template for key
func (b *Bestiary) Get(key string) (Template, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.templates[key]
	if !ok {
		return Template{}, dnderr.NotFoundf("no template %q in bestiary", key)
	}
	return t, nil
}

// Keys lists template keys sorted
func (b *Bestiary) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.templates))
	for k := range b.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Spawns returns the default spawn list
func (b *Bestiary) Spawns() []SpawnEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]SpawnEntry, len(b.spawns))
	copy(out, b.spawns)
	return out
}
