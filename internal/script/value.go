package script

import (
	"fmt"
	"strings"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// ValueSpec is the YAML form of a data value. Exactly one kind of value is
// given: string, entity, text with language, or amount with optional unit.
type ValueSpec struct {
	String   *string `yaml:"string,omitempty"`
	Entity   string  `yaml:"entity,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	Language string  `yaml:"language,omitempty"`
	Amount   string  `yaml:"amount,omitempty"`
	Unit     string  `yaml:"unit,omitempty"`
}

func (v ValueSpec) decode() (dm.Value, error) {
	switch {
	case v.String != nil:
		return dm.StringValue(*v.String), nil
	case v.Entity != "":
		id, err := dm.ParseEntityID(v.Entity)
		if err != nil {
			return nil, err
		}
		return id, nil
	case v.Language != "":
		return dm.NewTerm(v.Language, v.Text), nil
	case v.Amount != "":
		q := dm.QuantityValue{Amount: v.Amount}
		if v.Unit != "" {
			unit, err := dm.NewItemID(v.Unit)
			if err != nil {
				return nil, fmt.Errorf("quantity unit: %w", err)
			}
			q.Unit = unit
		}
		return q, nil
	default:
		return nil, fmt.Errorf("%w: value has no string, entity, text or amount", ErrInvalidScript)
	}
}

func encodeValue(v dm.Value) (*ValueSpec, error) {
	switch v := v.(type) {
	case dm.StringValue:
		s := string(v)
		return &ValueSpec{String: &s}, nil
	case dm.EntityID:
		return &ValueSpec{Entity: v.ID()}, nil
	case dm.MonolingualText:
		return &ValueSpec{Text: v.Text, Language: v.Language}, nil
	case dm.QuantityValue:
		spec := &ValueSpec{Amount: v.Amount}
		if !v.Unit.IsZero() {
			spec.Unit = v.Unit.ID()
		}
		return spec, nil
	default:
		return nil, fmt.Errorf("%w: cannot encode value %T", ErrInvalidScript, v)
	}
}

// SnakSpec is the YAML form of a snak: a property with a value, or with
// somevalue or novalue set.
type SnakSpec struct {
	Property  string     `yaml:"property"`
	Value     *ValueSpec `yaml:"value,omitempty"`
	SomeValue bool       `yaml:"somevalue,omitempty"`
	NoValue   bool       `yaml:"novalue,omitempty"`
}

func (s SnakSpec) decode() (dm.Snak, error) {
	property, err := dm.NewPropertyID(s.Property)
	if err != nil {
		return nil, fmt.Errorf("snak property: %w", err)
	}
	given := 0
	for _, set := range []bool{s.Value != nil, s.SomeValue, s.NoValue} {
		if set {
			given++
		}
	}
	if given != 1 {
		return nil, fmt.Errorf("%w: snak on %s needs exactly one of value, somevalue, novalue", ErrInvalidScript, property)
	}
	switch {
	case s.SomeValue:
		return dm.SomeValueSnak{PropertyID: property}, nil
	case s.NoValue:
		return dm.NoValueSnak{PropertyID: property}, nil
	}
	value, err := s.Value.decode()
	if err != nil {
		return nil, err
	}
	return dm.ValueSnak{PropertyID: property, Value: value}, nil
}

func encodeSnak(snak dm.Snak) (SnakSpec, error) {
	spec := SnakSpec{Property: snak.Property().ID()}
	switch snak := snak.(type) {
	case dm.ValueSnak:
		value, err := encodeValue(snak.Value)
		if err != nil {
			return SnakSpec{}, err
		}
		spec.Value = value
	case dm.SomeValueSnak:
		spec.SomeValue = true
	case dm.NoValueSnak:
		spec.NoValue = true
	default:
		return SnakSpec{}, fmt.Errorf("%w: cannot encode snak %T", ErrInvalidScript, snak)
	}
	return spec, nil
}

func decodeSnaks(specs []SnakSpec) ([]dm.Snak, error) {
	var snaks []dm.Snak
	for _, spec := range specs {
		snak, err := spec.decode()
		if err != nil {
			return nil, err
		}
		snaks = append(snaks, snak)
	}
	return snaks, nil
}

func encodeSnaks(snaks []dm.Snak) ([]SnakSpec, error) {
	var specs []SnakSpec
	for _, snak := range snaks {
		spec, err := encodeSnak(snak)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// StatementSpec is the YAML form of a statement. The subject is implied by
// the enclosing document or script.
type StatementSpec struct {
	SnakSpec `yaml:",inline"`

	ID         string       `yaml:"id,omitempty"`
	Rank       string       `yaml:"rank,omitempty"`
	Qualifiers []SnakSpec   `yaml:"qualifiers,omitempty"`
	References [][]SnakSpec `yaml:"references,omitempty"`
}

func (s StatementSpec) decode(subject dm.EntityID) (dm.Statement, error) {
	main, err := s.SnakSpec.decode()
	if err != nil {
		return dm.Statement{}, err
	}
	rank, err := parseRank(s.Rank)
	if err != nil {
		return dm.Statement{}, err
	}
	qualifiers, err := decodeSnaks(s.Qualifiers)
	if err != nil {
		return dm.Statement{}, err
	}
	st := dm.Statement{ID: s.ID, Subject: subject, MainSnak: main, Qualifiers: qualifiers, Rank: rank}
	for _, ref := range s.References {
		snaks, err := decodeSnaks(ref)
		if err != nil {
			return dm.Statement{}, err
		}
		st.References = append(st.References, dm.Reference{Snaks: snaks})
	}
	return st, nil
}

func encodeStatement(st dm.Statement) (StatementSpec, error) {
	main, err := encodeSnak(st.MainSnak)
	if err != nil {
		return StatementSpec{}, err
	}
	spec := StatementSpec{ID: st.ID, SnakSpec: main}
	if st.Rank != dm.RankNormal {
		spec.Rank = st.Rank.String()
	}
	if spec.Qualifiers, err = encodeSnaks(st.Qualifiers); err != nil {
		return StatementSpec{}, err
	}
	for _, ref := range st.References {
		snaks, err := encodeSnaks(ref.Snaks)
		if err != nil {
			return StatementSpec{}, err
		}
		spec.References = append(spec.References, snaks)
	}
	return spec, nil
}

func decodeStatements(specs []StatementSpec, subject dm.EntityID) ([]dm.Statement, error) {
	var out []dm.Statement
	for _, spec := range specs {
		st, err := spec.decode(subject)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func encodeStatements(groups []dm.StatementGroup) ([]StatementSpec, error) {
	var out []StatementSpec
	for _, st := range dm.FlattenGroups(groups) {
		spec, err := encodeStatement(st)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func parseRank(s string) (dm.Rank, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return dm.RankNormal, nil
	case "preferred":
		return dm.RankPreferred, nil
	case "deprecated":
		return dm.RankDeprecated, nil
	default:
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidScript, s)
	}
}
