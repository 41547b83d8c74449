package statemachine

import (
	"fmt"
	"slices"
	"sync"
)

// Graph is a directed set of allowed state transitions. It holds no current
// state: callers ask whether moving from one state to another is legal.
type Graph[S comparable] struct {
	mu    sync.RWMutex
	edges map[S][]S
	self  bool
}

type Option[S comparable] func(*Graph[S])

// WithSelfTransitions treats from == to as always allowed.
func WithSelfTransitions[S comparable]() Option[S] {
	return func(g *Graph[S]) { g.self = true }
}

func New[S comparable](opts ...Option[S]) *Graph[S] {
	g := &Graph[S]{edges: make(map[S][]S)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Allow registers from -> to for every target.
func (g *Graph[S]) Allow(from S, to ...S) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range to {
		if !slices.Contains(g.edges[from], t) {
			g.edges[from] = append(g.edges[from], t)
		}
	}
	return g
}

// AllowFromAny registers f -> to for each source f.
func (g *Graph[S]) AllowFromAny(to S, from ...S) *Graph[S] {
	for _, f := range from {
		g.Allow(f, to)
	}
	return g
}

func (g *Graph[S]) Can(from, to S) bool {
	if g.self && from == to {
		return true
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Contains(g.edges[from], to)
}

// Check returns a *TransitionError when from -> to is not registered.
func (g *Graph[S]) Check(from, to S) error {
	if g.Can(from, to) {
		return nil
	}
	return &TransitionError{From: fmt.Sprint(from), To: fmt.Sprint(to)}
}

// Targets lists the states reachable from s in one step.
func (g *Graph[S]) Targets(from S) []S {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.edges[from])
}
