package plan

import (
	nemo "github.com/nikosnikolaidis/incubator-nemo"
	"github.com/nikosnikolaidis/incubator-nemo/errors"
)

// A DAGBuilder accumulates Vertices and Edges, then validates them into an
// immutable DAG. Vertex insertion order seeds the topological order, and Edge
// insertion order fixes the iteration order of IncomingEdgesOf, so plans built
// the same way always traverse the same way.
type DAGBuilder struct {
	vertices  map[string]nemo.Vertex
	insertion []nemo.Vertex
	edges     []nemo.Edge
	inEdges   map[string][]nemo.Edge
	outEdges  map[string][]nemo.Edge
}

// CreateDAGBuilder returns an empty DAGBuilder
func CreateDAGBuilder() *DAGBuilder {
	return &DAGBuilder{
		vertices: make(map[string]nemo.Vertex),
		inEdges:  make(map[string][]nemo.Edge),
		outEdges: make(map[string][]nemo.Edge),
	}
}

// AddVertex adds v to the DAG under construction, returning an error if v was already added
func (b *DAGBuilder) AddVertex(v nemo.Vertex) error {
	if _, exists := b.vertices[v.ID()]; exists {
		return errors.DuplicateVertexError{ID: v.ID()}
	}
	b.vertices[v.ID()] = v
	b.insertion = append(b.insertion, v)
	return nil
}

// Connect adds e to the DAG under construction, returning an error if either
// endpoint has not been added via AddVertex
func (b *DAGBuilder) Connect(e nemo.Edge) error {
	if _, exists := b.vertices[e.Src().ID()]; !exists {
		return errors.UnknownVertexError{ID: e.Src().ID()}
	}
	if _, exists := b.vertices[e.Dst().ID()]; !exists {
		return errors.UnknownVertexError{ID: e.Dst().ID()}
	}
	b.edges = append(b.edges, e)
	b.inEdges[e.Dst().ID()] = append(b.inEdges[e.Dst().ID()], e)
	b.outEdges[e.Src().ID()] = append(b.outEdges[e.Src().ID()], e)
	return nil
}

// Build validates the accumulated Vertices and Edges and returns an immutable DAG
// with a fixed topological order. An error is returned if the Edges form a cycle.
func (b *DAGBuilder) Build() (nemo.DAG, error) {
	topological, err := b.sortTopologically()
	if err != nil {
		return nil, err
	}
	return &dagImpl{
		topological: topological,
		edges:       b.edges,
		inEdges:     b.inEdges,
		outEdges:    b.outEdges,
	}, nil
}

// sortTopologically orders the accumulated Vertices so that every Edge points
// forwards. Kahn's algorithm with a FIFO queue seeded in vertex insertion order,
// so the result is deterministic for identically-built plans.
func (b *DAGBuilder) sortTopologically() ([]nemo.Vertex, error) {
	remaining := make(map[string]int, len(b.vertices))
	queue := make([]nemo.Vertex, 0, len(b.vertices))
	for _, v := range b.insertion {
		remaining[v.ID()] = len(b.inEdges[v.ID()])
		if remaining[v.ID()] == 0 {
			queue = append(queue, v)
		}
	}
	ordered := make([]nemo.Vertex, 0, len(b.vertices))
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		ordered = append(ordered, v)
		for _, e := range b.outEdges[v.ID()] {
			remaining[e.Dst().ID()]--
			if remaining[e.Dst().ID()] == 0 {
				queue = append(queue, e.Dst())
			}
		}
	}
	if len(ordered) != len(b.insertion) {
		return nil, errors.CyclicGraphError{NumUnordered: len(b.insertion) - len(ordered)}
	}
	return ordered, nil
}

// dagImpl is an immutable DAG with a topological order frozen at Build time
type dagImpl struct {
	topological []nemo.Vertex
	edges       []nemo.Edge
	inEdges     map[string][]nemo.Edge
	outEdges    map[string][]nemo.Edge
}

// Vertices returns every Vertex in this DAG, in topological order
func (d *dagImpl) Vertices() []nemo.Vertex {
	return d.topological
}

// Edges returns every Edge in this DAG, in insertion order
func (d *dagImpl) Edges() []nemo.Edge {
	return d.edges
}

// IncomingEdgesOf returns the Edges terminating at v, in insertion order
func (d *dagImpl) IncomingEdgesOf(v nemo.Vertex) []nemo.Edge {
	return d.inEdges[v.ID()]
}

// OutgoingEdgesOf returns the Edges originating at v, in insertion order
func (d *dagImpl) OutgoingEdgesOf(v nemo.Vertex) []nemo.Edge {
	return d.outEdges[v.ID()]
}

// TopologicalDo applies f to every Vertex in topological order, stopping at the first error
func (d *dagImpl) TopologicalDo(f func(v nemo.Vertex) error) error {
	for _, v := range d.topological {
		if err := f(v); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the number of Vertices in this DAG
func (d *dagImpl) Size() int {
	return len(d.topological)
}
