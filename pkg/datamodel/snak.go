package datamodel

// Snak is a property paired with a value, an unknown value, or no value.
type Snak interface {
	// Property returns the property the snak is about.
	Property() EntityID
}

// ValueSnak states that the property has the given value.
type ValueSnak struct {
	PropertyID EntityID
	Value      Value
}

// Property implements Snak.
func (s ValueSnak) Property() EntityID { return s.PropertyID }

// SomeValueSnak states that the property has a value that is not known.
type SomeValueSnak struct {
	PropertyID EntityID
}

// Property implements Snak.
func (s SomeValueSnak) Property() EntityID { return s.PropertyID }

// NoValueSnak states that the property has no value.
type NoValueSnak struct {
	PropertyID EntityID
}

// Property implements Snak.
func (s NoValueSnak) Property() EntityID { return s.PropertyID }

// Reference is an ordered list of snaks supporting a statement.
type Reference struct {
	Snaks []Snak
}
