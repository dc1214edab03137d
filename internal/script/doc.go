// Package script reads and writes the YAML formats used by the command
// line: revision documents, which snapshot an entity, and edit scripts,
// which describe changes to one entity. Build replays a script through the
// update builders, blind or against a base revision.
package script
