package plan

import (
	"fmt"
	"log"

	uuid "github.com/gofrs/uuid"
	nemo "github.com/nikosnikolaidis/incubator-nemo"
)

// vertexImpl is an operator vertex described by an open attribute bag
type vertexImpl struct {
	id       string
	name     string
	attrs    map[nemo.Key]nemo.Value
	intAttrs map[nemo.IntegerKey]int
}

// CreateVertex returns a new Vertex with the given operator name and a fresh identity
func CreateVertex(name string) nemo.Vertex {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Vertex: %v", err)
	}
	return &vertexImpl{
		id:       id.String(),
		name:     name,
		attrs:    make(map[nemo.Key]nemo.Value),
		intAttrs: make(map[nemo.IntegerKey]int),
	}
}

// ID returns the unique identifier for this Vertex
func (v *vertexImpl) ID() string {
	return v.id
}

// Name returns the human-readable operator name for this Vertex
func (v *vertexImpl) Name() string {
	return v.name
}

// SetAttr records an attribute on this Vertex, overwriting any previous value for key
func (v *vertexImpl) SetAttr(key nemo.Key, val nemo.Value) nemo.Vertex {
	v.attrs[key] = val
	return v
}

// GetAttr returns the attribute for key, with false iff no value has been recorded
func (v *vertexImpl) GetAttr(key nemo.Key) (nemo.Value, bool) {
	val, ok := v.attrs[key]
	return val, ok
}

// SetIntAttr records an integer attribute on this Vertex, overwriting any previous value for key
func (v *vertexImpl) SetIntAttr(key nemo.IntegerKey, val int) nemo.Vertex {
	v.intAttrs[key] = val
	return v
}

// GetIntAttr returns the integer attribute for key, with false iff no value has been recorded
func (v *vertexImpl) GetIntAttr(key nemo.IntegerKey) (int, bool) {
	val, ok := v.intAttrs[key]
	return val, ok
}

// String returns a textual representation of this Vertex, for logging
func (v *vertexImpl) String() string {
	return fmt.Sprintf("vertex %s (%s) attrs: %v intAttrs: %v", v.name, v.id, v.attrs, v.intAttrs)
}
