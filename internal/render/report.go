// Package render describes built updates for people and for scripts: a
// colored line-per-change listing, a JSON report, and the one-line summary
// stored in the journal.
package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	dm "github.com/mesh-intelligence/wbedit/pkg/datamodel"
	"github.com/mesh-intelligence/wbedit/pkg/update"
)

// Change operations.
const (
	OpAdd     = "add"
	OpReplace = "replace"
	OpRemove  = "remove"
	OpSet     = "set"
)

// Change is one elementary change inside an update.
type Change struct {
	Section string `json:"section"`
	Op      string `json:"op"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Report lists the changes of one entity update. Form and sense updates
// nested in a lexeme update appear under Nested.
type Report struct {
	Entity       string   `json:"entity"`
	Kind         string   `json:"kind"`
	BaseRevision int64    `json:"base_revision,omitempty"`
	Empty        bool     `json:"empty"`
	Changes      []Change `json:"changes,omitempty"`
	Nested       []Report `json:"nested,omitempty"`
}

// NewReport describes u.
func NewReport(u update.EntityUpdate) Report {
	r := Report{
		Entity:       u.EntityID().ID(),
		Kind:         u.EntityID().Kind().String(),
		BaseRevision: u.BaseRevisionID(),
		Empty:        u.IsEmpty(),
	}
	r.statements(u.Statements())

	switch u := u.(type) {
	case *update.ItemUpdate:
		r.termed(u.Labels(), u.Descriptions(), u.Aliases())
	case *update.PropertyUpdate:
		r.termed(u.Labels(), u.Descriptions(), u.Aliases())
	case *update.FormUpdate:
		r.terms("representations", u.Representations())
		if features, ok := u.GrammaticalFeatures(); ok {
			r.add("grammatical_features", OpSet, "", joinIDs(features))
		}
	case *update.SenseUpdate:
		r.terms("glosses", u.Glosses())
	case *update.LexemeUpdate:
		r.lexeme(u)
	}
	return r
}

func (r *Report) add(section, op, key, value string) {
	r.Changes = append(r.Changes, Change{Section: section, Op: op, Key: key, Value: value})
}

func (r *Report) statements(u update.StatementUpdate) {
	for _, s := range u.Added() {
		r.add("statements", OpAdd, "", FormatStatement(s))
	}
	replaced := u.Replaced()
	for _, id := range slices.Sorted(maps.Keys(replaced)) {
		r.add("statements", OpReplace, id, FormatStatement(replaced[id]))
	}
	for _, id := range u.Removed() {
		r.add("statements", OpRemove, id, "")
	}
}

func (r *Report) terms(section string, u update.TermUpdate) {
	modified := u.Modified()
	for _, lang := range slices.Sorted(maps.Keys(modified)) {
		r.add(section, OpSet, lang, modified[lang].Text)
	}
	for _, lang := range u.Removed() {
		r.add(section, OpRemove, lang, "")
	}
}

func (r *Report) termed(labels, descriptions update.TermUpdate, aliases map[string]update.AliasUpdate) {
	r.terms("labels", labels)
	r.terms("descriptions", descriptions)
	for _, lang := range slices.Sorted(maps.Keys(aliases)) {
		u := aliases[lang]
		if list, ok := u.Recreated(); ok {
			r.add("aliases", OpSet, lang, joinTexts(list))
			continue
		}
		for _, alias := range u.Added() {
			r.add("aliases", OpAdd, lang, alias.Text)
		}
		for _, alias := range u.Removed() {
			r.add("aliases", OpRemove, lang, alias.Text)
		}
	}
}

func (r *Report) lexeme(u *update.LexemeUpdate) {
	r.terms("lemmas", u.Lemmas())
	if id, ok := u.LexicalCategory(); ok {
		r.add("lexical_category", OpSet, "", id.ID())
	}
	if id, ok := u.Language(); ok {
		r.add("language", OpSet, "", id.ID())
	}

	for _, form := range u.AddedForms() {
		r.add("forms", OpAdd, "", joinTexts(sortedTerms(form.Representations)))
	}
	updatedForms := u.UpdatedForms()
	for _, id := range sortedIDs(updatedForms) {
		r.Nested = append(r.Nested, NewReport(updatedForms[id]))
	}
	for _, id := range u.RemovedForms() {
		r.add("forms", OpRemove, id.ID(), "")
	}

	for _, sense := range u.AddedSenses() {
		r.add("senses", OpAdd, "", joinTexts(sortedTerms(sense.Glosses)))
	}
	updatedSenses := u.UpdatedSenses()
	for _, id := range sortedIDs(updatedSenses) {
		r.Nested = append(r.Nested, NewReport(updatedSenses[id]))
	}
	for _, id := range u.RemovedSenses() {
		r.add("senses", OpRemove, id.ID(), "")
	}
}

// Summary condenses r into one line of per-section counts, for example
// "statements +1 ~1 -2; labels =1". Nested updates are counted under their
// own entity ID.
func (r Report) Summary() string {
	if r.Empty {
		return "no changes"
	}
	var parts []string
	for _, section := range r.sections() {
		counts := map[string]int{}
		for _, c := range r.Changes {
			if c.Section == section {
				counts[c.Op]++
			}
		}
		var ops []string
		for _, op := range []string{OpAdd, OpReplace, OpSet, OpRemove} {
			if n := counts[op]; n > 0 {
				ops = append(ops, fmt.Sprintf("%s%d", opSigil(op), n))
			}
		}
		parts = append(parts, section+" "+strings.Join(ops, " "))
	}
	for _, nested := range r.Nested {
		parts = append(parts, fmt.Sprintf("%s [%s]", nested.Entity, nested.Summary()))
	}
	return strings.Join(parts, "; ")
}

// sections returns the sections of r in first-seen order.
func (r Report) sections() []string {
	var sections []string
	for _, c := range r.Changes {
		if !slices.Contains(sections, c.Section) {
			sections = append(sections, c.Section)
		}
	}
	return sections
}

// Summary is NewReport(u).Summary().
func Summary(u update.EntityUpdate) string {
	return NewReport(u).Summary()
}

func opSigil(op string) string {
	switch op {
	case OpAdd:
		return "+"
	case OpReplace:
		return "~"
	case OpRemove:
		return "-"
	default:
		return "="
	}
}

// FormatStatement renders the main claim of s, e.g. `P31 = Q5`, with a
// count of qualifiers and references when present.
func FormatStatement(s dm.Statement) string {
	var b strings.Builder
	b.WriteString(FormatSnak(s.MainSnak))
	if s.Rank != dm.RankNormal {
		fmt.Fprintf(&b, " [%s]", s.Rank)
	}
	if n := len(s.Qualifiers); n > 0 {
		fmt.Fprintf(&b, " (%d qualifiers)", n)
	}
	if n := len(s.References); n > 0 {
		fmt.Fprintf(&b, " (%d references)", n)
	}
	return b.String()
}

// FormatSnak renders a snak as `P = value`, `P = ?` or `P = none`.
func FormatSnak(snak dm.Snak) string {
	switch snak := snak.(type) {
	case dm.ValueSnak:
		return snak.PropertyID.ID() + " = " + FormatValue(snak.Value)
	case dm.SomeValueSnak:
		return snak.PropertyID.ID() + " = ?"
	case dm.NoValueSnak:
		return snak.PropertyID.ID() + " = none"
	default:
		return "<no claim>"
	}
}

// FormatValue renders a data value.
func FormatValue(v dm.Value) string {
	switch v := v.(type) {
	case dm.StringValue:
		return fmt.Sprintf("%q", string(v))
	case dm.EntityID:
		return v.ID()
	case dm.MonolingualText:
		return v.String()
	case dm.QuantityValue:
		if v.Unit.IsZero() {
			return v.Amount
		}
		return v.Amount + " " + v.Unit.ID()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func joinIDs(ids []dm.EntityID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.ID()
	}
	return strings.Join(names, ", ")
}

func joinTexts(terms []dm.MonolingualText) string {
	texts := make([]string, len(terms))
	for i, t := range terms {
		texts[i] = t.String()
	}
	return strings.Join(texts, ", ")
}

func sortedTerms(m map[string]dm.MonolingualText) []dm.MonolingualText {
	terms := make([]dm.MonolingualText, 0, len(m))
	for _, lang := range slices.Sorted(maps.Keys(m)) {
		terms = append(terms, m[lang])
	}
	return terms
}

func sortedIDs[V any](m map[dm.EntityID]V) []dm.EntityID {
	return slices.SortedFunc(maps.Keys(m), func(a, b dm.EntityID) int {
		return strings.Compare(a.ID(), b.ID())
	})
}
