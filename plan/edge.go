package plan

import (
	"fmt"
	"log"

	uuid "github.com/gofrs/uuid"
	nemo "github.com/nikosnikolaidis/incubator-nemo"
)

// edgeImpl is a data dependency between two vertices, described by an open attribute bag
type edgeImpl struct {
	id       string
	src      nemo.Vertex
	dst      nemo.Vertex
	attrs    map[nemo.Key]nemo.Value
	intAttrs map[nemo.IntegerKey]int
}

// CreateEdge returns a new Edge of the given data-dependency kind from src to dst
func CreateEdge(edgeType nemo.Value, src nemo.Vertex, dst nemo.Vertex) nemo.Edge {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Edge: %v", err)
	}
	e := &edgeImpl{
		id:       id.String(),
		src:      src,
		dst:      dst,
		attrs:    make(map[nemo.Key]nemo.Value),
		intAttrs: make(map[nemo.IntegerKey]int),
	}
	e.attrs[nemo.EdgeType] = edgeType
	return e
}

// ID returns the unique identifier for this Edge
func (e *edgeImpl) ID() string {
	return e.id
}

// Src returns the Vertex this Edge consumes data from
func (e *edgeImpl) Src() nemo.Vertex {
	return e.src
}

// Dst returns the Vertex this Edge delivers data to
func (e *edgeImpl) Dst() nemo.Vertex {
	return e.dst
}

// SetAttr records an attribute on this Edge, overwriting any previous value for key
func (e *edgeImpl) SetAttr(key nemo.Key, val nemo.Value) nemo.Edge {
	e.attrs[key] = val
	return e
}

// GetAttr returns the attribute for key, with false iff no value has been recorded
func (e *edgeImpl) GetAttr(key nemo.Key) (nemo.Value, bool) {
	val, ok := e.attrs[key]
	return val, ok
}

// SetIntAttr records an integer attribute on this Edge, overwriting any previous value for key
func (e *edgeImpl) SetIntAttr(key nemo.IntegerKey, val int) nemo.Edge {
	e.intAttrs[key] = val
	return e
}

// GetIntAttr returns the integer attribute for key, with false iff no value has been recorded
func (e *edgeImpl) GetIntAttr(key nemo.IntegerKey) (int, bool) {
	val, ok := e.intAttrs[key]
	return val, ok
}

// String returns a textual representation of this Edge, for logging
func (e *edgeImpl) String() string {
	return fmt.Sprintf("edge %s (%s -> %s) attrs: %v", e.id, e.src.Name(), e.dst.Name(), e.attrs)
}
