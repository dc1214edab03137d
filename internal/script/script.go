package script

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// ErrInvalidScript reports a script or document that cannot be decoded.
var ErrInvalidScript = fmt.Errorf("%w: invalid script", dm.ErrInvalidArgument)

// Script describes changes to one entity. Fields that do not apply to the
// entity's kind are rejected by Build.
type Script struct {
	Entity string `yaml:"entity"`
	// Base asks the caller to validate against the stored revision.
	Base bool `yaml:"base,omitempty"`

	Labels       *TermChanges            `yaml:"labels,omitempty"`
	Descriptions *TermChanges            `yaml:"descriptions,omitempty"`
	Aliases      map[string]AliasChanges `yaml:"aliases,omitempty"`
	Statements   *StatementChanges       `yaml:"statements,omitempty"`

	Lemmas          *TermChanges   `yaml:"lemmas,omitempty"`
	LexicalCategory string         `yaml:"lexical_category,omitempty"`
	Language        string         `yaml:"language,omitempty"`
	Forms           *NestedChanges `yaml:"forms,omitempty"`
	Senses          *NestedChanges `yaml:"senses,omitempty"`

	Representations     *TermChanges `yaml:"representations,omitempty"`
	GrammaticalFeatures *[]string    `yaml:"grammatical_features,omitempty"`
	Glosses             *TermChanges `yaml:"glosses,omitempty"`
}

// TermChanges sets and removes single-valued terms by language code.
type TermChanges struct {
	Set    map[string]string `yaml:"set,omitempty"`
	Remove []string          `yaml:"remove,omitempty"`
}

// AliasChanges edits the aliases of one language. Recreate, when given,
// replaces the list before Add and Remove apply.
type AliasChanges struct {
	Add      []string  `yaml:"add,omitempty"`
	Remove   []string  `yaml:"remove,omitempty"`
	Recreate *[]string `yaml:"recreate,omitempty"`
}

// StatementChanges adds, replaces and removes statements.
type StatementChanges struct {
	Add     []StatementSpec `yaml:"add,omitempty"`
	Replace []StatementSpec `yaml:"replace,omitempty"`
	Remove  []string        `yaml:"remove,omitempty"`
}

// NestedChanges adds, updates and removes the forms or senses of a
// lexeme. Each update is a script for one form or sense.
type NestedChanges struct {
	Add    []DocumentSpec `yaml:"add,omitempty"`
	Update []Script       `yaml:"update,omitempty"`
	Remove []string       `yaml:"remove,omitempty"`
}

// Parse decodes a YAML edit script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if s.Entity == "" {
		return nil, fmt.Errorf("%w: script entity", dm.ErrMissingArgument)
	}
	return &s, nil
}

// Load reads and decodes the edit script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// EntityID parses the target entity of the script.
func (s *Script) EntityID() (dm.EntityID, error) {
	return dm.ParseEntityID(s.Entity)
}
