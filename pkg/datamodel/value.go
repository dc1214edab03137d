package datamodel

import "fmt"

// Value is the closed set of data values a snak can carry: StringValue,
// EntityID, MonolingualText and QuantityValue.
type Value interface {
	isValue()
}

// StringValue is a plain string value.
type StringValue string

func (StringValue) isValue() {}

// MonolingualText is a language-tagged string. It is both a data value and
// the term type used for labels, descriptions, aliases, lemmas,
// representations and glosses.
type MonolingualText struct {
	Language string
	Text     string
}

// NewTerm returns a monolingual text in the given language.
func NewTerm(language, text string) MonolingualText {
	return MonolingualText{Language: language, Text: text}
}

// IsZero reports whether t carries neither a language nor a text.
func (t MonolingualText) IsZero() bool {
	return t.Language == "" && t.Text == ""
}

func (t MonolingualText) String() string {
	return fmt.Sprintf("%q@%s", t.Text, t.Language)
}

func (MonolingualText) isValue() {}

// QuantityValue is a decimal amount with an optional unit item.
// Amount keeps the decimal string as given to avoid float rounding.
type QuantityValue struct {
	Amount string
	Unit   EntityID
}

func (QuantityValue) isValue() {}
