package script

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
)

// DocumentSpec is the YAML form of a revision document. Which fields apply
// depends on the kind of entity named by ID.
type DocumentSpec struct {
	ID                  string              `yaml:"id"`
	Revision            int64               `yaml:"revision,omitempty"`
	Datatype            string              `yaml:"datatype,omitempty"`
	Labels              map[string]string   `yaml:"labels,omitempty"`
	Descriptions        map[string]string   `yaml:"descriptions,omitempty"`
	Aliases             map[string][]string `yaml:"aliases,omitempty"`
	Lemmas              map[string]string   `yaml:"lemmas,omitempty"`
	LexicalCategory     string              `yaml:"lexical_category,omitempty"`
	Language            string              `yaml:"language,omitempty"`
	Representations     map[string]string   `yaml:"representations,omitempty"`
	GrammaticalFeatures []string            `yaml:"grammatical_features,omitempty"`
	Glosses             map[string]string   `yaml:"glosses,omitempty"`
	Statements          []StatementSpec     `yaml:"statements,omitempty"`
	Forms               []DocumentSpec      `yaml:"forms,omitempty"`
	Senses              []DocumentSpec      `yaml:"senses,omitempty"`
}

// ParseDocument decodes a YAML revision document. Unknown fields are
// rejected.
func ParseDocument(data []byte) (dm.EntityDocument, error) {
	var spec DocumentSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return spec.Decode()
}

// LoadDocument reads and decodes the revision document at path.
func LoadDocument(path string) (dm.EntityDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// MarshalDocument encodes doc as YAML.
func MarshalDocument(doc dm.EntityDocument) ([]byte, error) {
	spec, err := EncodeDocument(doc)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(spec)
}

// Decode converts d into the document type for its entity kind.
func (d DocumentSpec) Decode() (dm.EntityDocument, error) {
	id, err := dm.ParseEntityID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("document ID: %w", err)
	}
	statements, err := decodeStatements(d.Statements, id)
	if err != nil {
		return nil, err
	}
	groups := dm.GroupStatements(statements)
	if err := d.checkFields(id.Kind()); err != nil {
		return nil, err
	}

	switch id.Kind() {
	case dm.KindItem:
		return dm.ItemDocument{
			ID:           id,
			RevisionID:   d.Revision,
			Labels:       decodeTerms(d.Labels),
			Descriptions: decodeTerms(d.Descriptions),
			Aliases:      decodeAliases(d.Aliases),
			Statements:   groups,
		}, nil
	case dm.KindProperty:
		return dm.PropertyDocument{
			ID:           id,
			RevisionID:   d.Revision,
			Datatype:     d.Datatype,
			Labels:       decodeTerms(d.Labels),
			Descriptions: decodeTerms(d.Descriptions),
			Aliases:      decodeAliases(d.Aliases),
			Statements:   groups,
		}, nil
	case dm.KindLexeme:
		return asDocument(d.decodeLexeme(id, groups))
	case dm.KindForm:
		return asDocument(d.decodeForm(id))
	default:
		return asDocument(d.decodeSense(id))
	}
}

func asDocument(doc dm.EntityDocument, err error) (dm.EntityDocument, error) {
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// checkFields rejects fields that do not apply to kind.
func (d DocumentSpec) checkFields(kind dm.EntityKind) error {
	termed := kind == dm.KindItem || kind == dm.KindProperty
	fields := []struct {
		name    string
		present bool
		allowed bool
	}{
		{"datatype", d.Datatype != "", kind == dm.KindProperty},
		{"labels", len(d.Labels) > 0, termed},
		{"descriptions", len(d.Descriptions) > 0, termed},
		{"aliases", len(d.Aliases) > 0, termed},
		{"lemmas", len(d.Lemmas) > 0, kind == dm.KindLexeme},
		{"lexical_category", d.LexicalCategory != "", kind == dm.KindLexeme},
		{"language", d.Language != "", kind == dm.KindLexeme},
		{"forms", len(d.Forms) > 0, kind == dm.KindLexeme},
		{"senses", len(d.Senses) > 0, kind == dm.KindLexeme},
		{"representations", len(d.Representations) > 0, kind == dm.KindForm},
		{"grammatical_features", len(d.GrammaticalFeatures) > 0, kind == dm.KindForm},
		{"glosses", len(d.Glosses) > 0, kind == dm.KindSense},
	}
	for _, f := range fields {
		if f.present && !f.allowed {
			return fmt.Errorf("%w: %s does not apply to a %s", ErrInvalidScript, f.name, kind)
		}
	}
	return nil
}

func (d DocumentSpec) decodeLexeme(id dm.EntityID, groups []dm.StatementGroup) (dm.LexemeDocument, error) {
	doc := dm.LexemeDocument{ID: id, RevisionID: d.Revision, Lemmas: decodeTerms(d.Lemmas), Statements: groups}
	var err error
	if d.LexicalCategory != "" {
		if doc.LexicalCategory, err = dm.NewItemID(d.LexicalCategory); err != nil {
			return dm.LexemeDocument{}, fmt.Errorf("lexical category: %w", err)
		}
	}
	if d.Language != "" {
		if doc.Language, err = dm.NewItemID(d.Language); err != nil {
			return dm.LexemeDocument{}, fmt.Errorf("language: %w", err)
		}
	}
	for _, spec := range d.Forms {
		formID, err := dm.NewFormID(spec.ID)
		if err != nil {
			return dm.LexemeDocument{}, err
		}
		form, err := spec.decodeForm(formID)
		if err != nil {
			return dm.LexemeDocument{}, err
		}
		doc.Forms = append(doc.Forms, form)
	}
	for _, spec := range d.Senses {
		senseID, err := dm.NewSenseID(spec.ID)
		if err != nil {
			return dm.LexemeDocument{}, err
		}
		sense, err := spec.decodeSense(senseID)
		if err != nil {
			return dm.LexemeDocument{}, err
		}
		doc.Senses = append(doc.Senses, sense)
	}
	return doc, nil
}

// decodeForm decodes a form. id is zero for forms that are yet to be
// created.
func (d DocumentSpec) decodeForm(id dm.EntityID) (dm.FormDocument, error) {
	if err := d.checkFields(dm.KindForm); err != nil {
		return dm.FormDocument{}, err
	}
	statements, err := decodeStatements(d.Statements, id)
	if err != nil {
		return dm.FormDocument{}, err
	}
	features, err := parseItems(d.GrammaticalFeatures)
	if err != nil {
		return dm.FormDocument{}, fmt.Errorf("grammatical features: %w", err)
	}
	return dm.FormDocument{
		ID:                  id,
		RevisionID:          d.Revision,
		Representations:     decodeTerms(d.Representations),
		GrammaticalFeatures: features,
		Statements:          dm.GroupStatements(statements),
	}, nil
}

// decodeSense decodes a sense. id is zero for senses that are yet to be
// created.
func (d DocumentSpec) decodeSense(id dm.EntityID) (dm.SenseDocument, error) {
	if err := d.checkFields(dm.KindSense); err != nil {
		return dm.SenseDocument{}, err
	}
	statements, err := decodeStatements(d.Statements, id)
	if err != nil {
		return dm.SenseDocument{}, err
	}
	return dm.SenseDocument{
		ID:         id,
		RevisionID: d.Revision,
		Glosses:    decodeTerms(d.Glosses),
		Statements: dm.GroupStatements(statements),
	}, nil
}

// EncodeDocument converts a document into its YAML form.
func EncodeDocument(doc dm.EntityDocument) (DocumentSpec, error) {
	switch doc := doc.(type) {
	case dm.ItemDocument:
		statements, err := encodeStatements(doc.Statements)
		if err != nil {
			return DocumentSpec{}, err
		}
		return DocumentSpec{
			ID:           doc.ID.ID(),
			Revision:     doc.RevisionID,
			Labels:       encodeTerms(doc.Labels),
			Descriptions: encodeTerms(doc.Descriptions),
			Aliases:      encodeAliases(doc.Aliases),
			Statements:   statements,
		}, nil
	case dm.PropertyDocument:
		statements, err := encodeStatements(doc.Statements)
		if err != nil {
			return DocumentSpec{}, err
		}
		return DocumentSpec{
			ID:           doc.ID.ID(),
			Revision:     doc.RevisionID,
			Datatype:     doc.Datatype,
			Labels:       encodeTerms(doc.Labels),
			Descriptions: encodeTerms(doc.Descriptions),
			Aliases:      encodeAliases(doc.Aliases),
			Statements:   statements,
		}, nil
	case dm.LexemeDocument:
		statements, err := encodeStatements(doc.Statements)
		if err != nil {
			return DocumentSpec{}, err
		}
		spec := DocumentSpec{
			ID:              doc.ID.ID(),
			Revision:        doc.RevisionID,
			Lemmas:          encodeTerms(doc.Lemmas),
			LexicalCategory: doc.LexicalCategory.ID(),
			Language:        doc.Language.ID(),
			Statements:      statements,
		}
		for _, form := range doc.Forms {
			fs, err := EncodeDocument(form)
			if err != nil {
				return DocumentSpec{}, err
			}
			spec.Forms = append(spec.Forms, fs)
		}
		for _, sense := range doc.Senses {
			ss, err := EncodeDocument(sense)
			if err != nil {
				return DocumentSpec{}, err
			}
			spec.Senses = append(spec.Senses, ss)
		}
		return spec, nil
	case dm.FormDocument:
		statements, err := encodeStatements(doc.Statements)
		if err != nil {
			return DocumentSpec{}, err
		}
		spec := DocumentSpec{
			ID:              doc.ID.ID(),
			Revision:        doc.RevisionID,
			Representations: encodeTerms(doc.Representations),
			Statements:      statements,
		}
		for _, f := range doc.GrammaticalFeatures {
			spec.GrammaticalFeatures = append(spec.GrammaticalFeatures, f.ID())
		}
		return spec, nil
	case dm.SenseDocument:
		statements, err := encodeStatements(doc.Statements)
		if err != nil {
			return DocumentSpec{}, err
		}
		return DocumentSpec{
			ID:         doc.ID.ID(),
			Revision:   doc.RevisionID,
			Glosses:    encodeTerms(doc.Glosses),
			Statements: statements,
		}, nil
	default:
		return DocumentSpec{}, fmt.Errorf("%w: cannot encode document %T", ErrInvalidScript, doc)
	}
}

func decodeTerms(m map[string]string) map[string]dm.MonolingualText {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]dm.MonolingualText, len(m))
	for lang, text := range m {
		out[lang] = dm.NewTerm(lang, text)
	}
	return out
}

func encodeTerms(m map[string]dm.MonolingualText) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for lang, term := range m {
		out[lang] = term.Text
	}
	return out
}

func decodeAliases(m map[string][]string) map[string][]dm.MonolingualText {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string][]dm.MonolingualText, len(m))
	for lang, texts := range m {
		out[lang] = termList(lang, texts)
	}
	return out
}

func encodeAliases(m map[string][]dm.MonolingualText) map[string][]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m))
	for _, lang := range slices.Sorted(maps.Keys(m)) {
		for _, alias := range m[lang] {
			out[lang] = append(out[lang], alias.Text)
		}
	}
	return out
}

func termList(lang string, texts []string) []dm.MonolingualText {
	out := make([]dm.MonolingualText, 0, len(texts))
	for _, text := range texts {
		out = append(out, dm.NewTerm(lang, text))
	}
	return out
}

func parseItems(ids []string) ([]dm.EntityID, error) {
	var out []dm.EntityID
	for _, s := range ids {
		id, err := dm.NewItemID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
