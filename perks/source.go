package perks

import (
	"io/ioutil"
	"log"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dovahkit/perktree_editor/config"
)

// Plugin dumps arrive as yaml emitted by the plugin extraction tooling. One
// document lists every skill with its anchor name and perk records; string
// fields are codepage-encoded and run through the configured charmap.

type dumpPerk struct {
	ID      uint32   `yaml:"id"`
	FormID  uint32   `yaml:"form_id"`
	EDID    string   `yaml:"edid"`
	Name    string   `yaml:"name"`
	GridX   float32  `yaml:"grid_x"`
	GridY   float32  `yaml:"grid_y"`
	OffsetX float32  `yaml:"offset_x"`
	OffsetY float32  `yaml:"offset_y"`
	Childs  []uint32 `yaml:"children"`
}

type dumpSkill struct {
	Name   string     `yaml:"name"`
	Anchor string     `yaml:"anchor"`
	Perks  []dumpPerk `yaml:"perks"`
}

type dumpFile struct {
	Skills []dumpSkill `yaml:"skills"`
}

// Skill is one constellation definition: where it mounts in the dome scene
// and the records its editable tree is built from.
type Skill struct {
	Name    string
	Anchor  string
	Records []Record
}

type Source struct {
	Skills []Skill
}

func (s *Source) SkillByName(name string) *Skill {
	for i := range s.Skills {
		if s.Skills[i].Name == name {
			return &s.Skills[i]
		}
	}
	return nil
}

// Tree builds a fresh editable tree for the named skill, nil when unknown.
// Trees are rebuilt on every selection and never persisted.
func (s *Source) Tree(name string) *Tree {
	skill := s.SkillByName(name)
	if skill == nil {
		return nil
	}
	return NewTree(skill.Name, skill.Records)
}

func LoadDump(path string) (*Source, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read perk dump %q", path)
	}
	return ParseDump(data)
}

func ParseDump(data []byte) (*Source, error) {
	var dump dumpFile
	if err := yaml.Unmarshal(data, &dump); err != nil {
		return nil, errors.Wrap(err, "failed to parse perk dump")
	}

	src := &Source{Skills: make([]Skill, 0, len(dump.Skills))}
	for _, ds := range dump.Skills {
		skill := Skill{
			Name:    config.DecodeString([]byte(ds.Name)),
			Anchor:  ds.Anchor,
			Records: make([]Record, 0, len(ds.Perks)),
		}
		for _, dp := range ds.Perks {
			skill.Records = append(skill.Records, Record{
				ID: dp.ID,
				Perk: PerkRef{
					FormID: dp.FormID,
					EDID:   config.DecodeString([]byte(dp.EDID)),
					Name:   config.DecodeString([]byte(dp.Name)),
				},
				GridX:    dp.GridX,
				GridY:    dp.GridY,
				OffsetX:  dp.OffsetX,
				OffsetY:  dp.OffsetY,
				Children: dp.Childs,
			})
		}
		src.Skills = append(src.Skills, skill)
	}

	log.Printf("[perks] loaded %d skills", len(src.Skills))
	return src, nil
}
