package data

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/udisondev/battlecore/internal/model"
)

// ErrUnknownCharacter is returned for an id missing from the characters file.
var ErrUnknownCharacter = errors.New("unknown character")

// Data file names inside the data directory.
const (
	SkillsFile     = "skills.yaml"
	MonstersFile   = "monsters.yaml"
	ItemsFile      = "items.yaml"
	MapsFile       = "maps.yaml"
	CharactersFile = "characters.yaml"
)

// Catalog is the full static data set. Read-only after Load.
type Catalog struct {
	Skills     SkillTable
	Monsters   MonsterTable
	Items      ItemTable
	Maps       []MapDef
	Characters []CharacterDef
}

// Load reads every data file from dir.
func Load(dir string) (*Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.Skills, err = openAndLoad(filepath.Join(dir, SkillsFile), LoadSkills); err != nil {
		return nil, err
	}
	if c.Monsters, err = openAndLoad(filepath.Join(dir, MonstersFile), LoadMonsters); err != nil {
		return nil, err
	}
	if c.Items, err = openAndLoad(filepath.Join(dir, ItemsFile), LoadItems); err != nil {
		return nil, err
	}
	if c.Maps, err = openAndLoad(filepath.Join(dir, MapsFile), LoadMaps); err != nil {
		return nil, err
	}
	if c.Characters, err = openAndLoad(filepath.Join(dir, CharactersFile), LoadCharacters); err != nil {
		return nil, err
	}

	slog.Info("loaded static data",
		"skills", len(c.Skills),
		"monsters", len(c.Monsters),
		"items", len(c.Items),
		"maps", len(c.Maps),
		"characters", len(c.Characters))
	return &c, nil
}

// Character returns the starter definition with the given id.
func (c *Catalog) Character(id int64) (*CharacterDef, bool) {
	for i := range c.Characters {
		if c.Characters[i].ID == id {
			return &c.Characters[i], true
		}
	}
	return nil, false
}

// NewCharacter builds a fresh in-session character from its starter definition.
func (c *Catalog) NewCharacter(id int64) (*model.Character, error) {
	def, ok := c.Character(id)
	if !ok {
		return nil, fmt.Errorf("character %d: %w", id, ErrUnknownCharacter)
	}
	return def.Build(c.Skills)
}
