// Package update builds incremental changes to knowledge-base entities.
//
// An update is accumulated in a builder and frozen by Build into an
// immutable value. Builders come in two modes chosen at construction:
// blind builders assume nothing about the entity's current state, while
// builders created from a base revision reject references to statements
// that do not exist and drop changes that would leave the base unchanged.
//
// Every builder mutator either applies completely or returns an error and
// leaves the builder untouched. Updates of the same shape can be merged;
// merging a then b has the same effect as applying a and then b.
//
// Build does not consume a builder. Each call returns an update that
// shares no state with the builder, so a builder may keep accumulating
// changes and be built again; later changes never show up in updates
// already built.
//
// Builders are not safe for concurrent use. Built updates are immutable
// and may be shared freely.
package update
