package cascade

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"go.uber.org/zap"
)

// Mutation describes what a relationship does to its referencing entities
type Mutation string

const (
	Unlink          Mutation = "unlink"
	NullReference   Mutation = "null-reference"
	ClearFields     Mutation = "clear-fields"
	RewriteConf     Mutation = "rewrite-conf"
	DeleteReferrers Mutation = "delete"
	PurgeCache      Mutation = "purge-cache"
	Unregister      Mutation = "unregister"
)

// Relationship is one referencing relationship of a root entity. Apply
// locates the referencing entities and mutates them; it runs inside the
// enclosing transaction.
type Relationship[R any] struct {
	Name       string
	Referencer string
	Mutation   Mutation
	Apply      func(ctx context.Context, root R) error
}

// Hook is a side effect that must only happen once the deletion is durable.
// Hooks are best-effort and cannot fail the deletion.
type Hook[R any] struct {
	Name     string
	Target   string
	Mutation Mutation
	Run      func(ctx context.Context, root R)
}

// Plan is the cascade for one root entity kind
type Plan[R any] struct {
	Root          string
	Key           func(R) string
	Relationships []Relationship[R]
	Remove        func(ctx context.Context, root R) error
	AfterCommit   []Hook[R]
}

// Run applies every relationship in order, removes the root and queues the
// post-commit hooks on hooks. A nil hooks runs them immediately after the
// root is removed.
func (p *Plan[R]) Run(ctx context.Context, root R, hooks *Hooks) error {
	key := p.key(root)

	for _, rel := range p.Relationships {
		logger.Log.Debug("cascade",
			zap.String("root", p.Root),
			zap.String("key", key),
			zap.String("relationship", rel.Name),
			zap.String("mutation", string(rel.Mutation)),
		)
		if err := rel.Apply(ctx, root); err != nil {
			return &Error{Root: p.Root, Key: key, Relationship: rel.Name, Err: err}
		}
	}

	if p.Remove != nil {
		if err := p.Remove(ctx, root); err != nil {
			return &Error{Root: p.Root, Key: key, Err: err}
		}
	}

	for _, h := range p.AfterCommit {
		run := h.Run
		hook := pending{
			name: p.Root + " " + h.Name,
			fn:   func(ctx context.Context) { run(ctx, root) },
		}
		if hooks == nil {
			runHook(ctx, hook)
			continue
		}
		hooks.Add(hook.name, hook.fn)
	}
	return nil
}

func (p *Plan[R]) key(root R) string {
	if p.Key == nil {
		return ""
	}
	return p.Key(root)
}

// Spec describes the plan as rows, one per relationship and hook, in the
// order they run
func (p *Plan[R]) Spec() []Spec {
	rows := make([]Spec, 0, len(p.Relationships)+len(p.AfterCommit))
	for i, rel := range p.Relationships {
		rows = append(rows, Spec{
			Root:       p.Root,
			Step:       i + 1,
			Name:       rel.Name,
			Referencer: rel.Referencer,
			Mutation:   rel.Mutation,
		})
	}
	for i, h := range p.AfterCommit {
		rows = append(rows, Spec{
			Root:        p.Root,
			Step:        len(p.Relationships) + i + 1,
			Name:        h.Name,
			Referencer:  h.Target,
			Mutation:    h.Mutation,
			AfterCommit: true,
		})
	}
	return rows
}

// Spec is one row of the cascade table
type Spec struct {
	Root        string   `json:"root"`
	Step        int      `json:"step"`
	Name        string   `json:"name"`
	Referencer  string   `json:"referencer"`
	Mutation    Mutation `json:"mutation"`
	AfterCommit bool     `json:"after_commit,omitempty"`
}

// Error reports the relationship that stopped a cascade. The root entity was
// not removed.
type Error struct {
	Root         string
	Key          string
	Relationship string
	Err          error
}

func (e *Error) Error() string {
	if e.Relationship == "" {
		return fmt.Sprintf("cascade %s %q: removing root: %v", e.Root, e.Key, e.Err)
	}
	return fmt.Sprintf("cascade %s %q: %s: %v", e.Root, e.Key, e.Relationship, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
