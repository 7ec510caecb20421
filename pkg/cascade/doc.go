// Package cascade coordinates the deletion of entities that other entities
// reference by identity.
//
// Storage does not enforce these references, so every relationship that must
// be cleaned up when its target goes away is declared in a Plan. A Plan lists
// the relationships in the order they are applied, how the root row is
// removed, and which process-wide side effects (cache purges, registry
// updates) must follow once the enclosing transaction commits.
//
// Run applies the relationships in order and stops at the first failure
// without removing the root. The caller's transaction then rolls back, so a
// partial cascade is never committed.
package cascade
