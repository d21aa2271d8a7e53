package optimizer

import (
	"github.com/hashicorp/go-multierror"
	nemo "github.com/nikosnikolaidis/incubator-nemo"
	"github.com/nikosnikolaidis/incubator-nemo/errors"
)

// stagePartitioningPass groups the vertices of a plan DAG into stages: maximal
// sets of vertices which can be scheduled and pipelined as a single unit without
// materializing intermediate data. One greedy traversal in topological order
// decides, per vertex, whether to fuse it into the stage of one of its
// predecessors or to start a new stage. A vertex may fuse along an incoming edge
// only if the edge moves each element to exactly one consumer, keeps its data in
// memory, connects co-located vertices, and targets a stage no already-visited
// vertex depends on through a non-fused edge. The result is recorded as the
// StageID attribute of every vertex.
type stagePartitioningPass struct{}

// CreateStagePartitioningPass returns the default stage partitioning Pass
func CreateStagePartitioningPass() nemo.Pass {
	return &stagePartitioningPass{}
}

// Name returns a short name for this Pass, for logging
func (p *stagePartitioningPass) Name() string {
	return "default-stage-partitioning"
}

// Process groups the vertices of dag into stages and records each vertex's stage
// number as its StageID attribute. Stage numbers are assigned in the order stages
// are first created; no ordering relationship between stage number and topological
// position is guaranteed, so callers must consult the DAG structure, not compare
// stage numbers, to infer inter-stage ordering. Process validates that every
// vertex carries Placement and every edge carries EdgeType and ChannelDataPlacement
// before recording anything, so a precondition failure leaves no partial assignment.
func (p *stagePartitioningPass) Process(dag nemo.DAG) (nemo.DAG, error) {
	if err := validateAttributes(dag); err != nil {
		return nil, err
	}
	state := createPartitionState(dag.Size())
	err := dag.TopologicalDo(func(v nemo.Vertex) error {
		inEdges := dag.IncomingEdgesOf(v)
		if len(inEdges) == 0 {
			state.newStage(v)
			return nil
		}
		var fusing nemo.Edge
		for _, e := range inEdges {
			if state.fusable(e) {
				fusing = e
				break
			}
		}
		// Every incoming edge this vertex does not fuse along establishes a
		// dependency on its source's stage through a separate path, so that
		// stage must never accept a later vertex: the later vertex would be
		// ordered after the dependency, risking a cycle between stages.
		for _, e := range inEdges {
			if fusing != nil && e.ID() == fusing.ID() {
				continue
			}
			state.markDependent(e.Src())
		}
		if fusing == nil {
			state.newStage(v)
		} else {
			state.fuse(v, fusing.Src())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, group := range state.groups {
		for _, v := range group.vertices {
			v.SetIntAttr(nemo.StageID, group.num)
		}
	}
	return dag, nil
}

// validateAttributes checks that every vertex and edge of dag carries the
// attributes this pass consumes, reporting all violations at once so a broken
// upstream pass can be diagnosed in a single run.
func validateAttributes(dag nemo.DAG) error {
	var result *multierror.Error
	for _, v := range dag.Vertices() {
		if _, ok := v.GetAttr(nemo.Placement); !ok {
			result = multierror.Append(result, errors.MissingAttributeError{Kind: "vertex", ID: v.ID(), Key: string(nemo.Placement)})
		}
	}
	for _, e := range dag.Edges() {
		if _, ok := e.GetAttr(nemo.EdgeType); !ok {
			result = multierror.Append(result, errors.MissingAttributeError{Kind: "edge", ID: e.ID(), Key: string(nemo.EdgeType)})
		}
		if _, ok := e.GetAttr(nemo.ChannelDataPlacement); !ok {
			result = multierror.Append(result, errors.MissingAttributeError{Kind: "edge", ID: e.ID(), Key: string(nemo.ChannelDataPlacement)})
		}
	}
	return result.ErrorOrNil()
}

// stageGroup is one stage under construction. num is fixed at creation; vertices
// continue to be appended as later vertices fuse in.
type stageGroup struct {
	num      int
	vertices []nemo.Vertex
}

// partitionState is the transient state of one partitioning run. Stage groups
// live in an arena indexed by stage number; order is a separate table recording
// the output ordering of groups, so moving a freshly-extended group to the end
// shuffles indices instead of searching lists.
type partitionState struct {
	stageOf   map[string]int // vertex id to stage number, write-once
	groups    []*stageGroup  // arena, indexed by stage number
	order     []int          // group output ordering, as indices into groups
	dependent map[int]bool   // stages barred from further fusion
}

func createPartitionState(numVertices int) *partitionState {
	return &partitionState{
		stageOf:   make(map[string]int, numVertices),
		dependent: make(map[int]bool),
	}
}

// fusable reports whether e is a legal fusing edge for its destination: e must
// be OneToOne over an in-memory channel between co-located vertices, its source
// must already be staged, and no visited vertex may depend on that stage through
// a non-fused path.
func (s *partitionState) fusable(e nemo.Edge) bool {
	if edgeType, _ := e.GetAttr(nemo.EdgeType); edgeType != nemo.OneToOne {
		return false
	}
	if channel, _ := e.GetAttr(nemo.ChannelDataPlacement); channel != nemo.Memory {
		return false
	}
	srcPlacement, _ := e.Src().GetAttr(nemo.Placement)
	dstPlacement, _ := e.Dst().GetAttr(nemo.Placement)
	if srcPlacement != dstPlacement {
		return false
	}
	srcStage, staged := s.stageOf[e.Src().ID()]
	if !staged {
		return false
	}
	return !s.dependent[srcStage]
}

// newStage starts a singleton stage group for v under the next stage number
func (s *partitionState) newStage(v nemo.Vertex) {
	num := len(s.groups)
	s.stageOf[v.ID()] = num
	s.groups = append(s.groups, &stageGroup{num: num, vertices: []nemo.Vertex{v}})
	s.order = append(s.order, num)
}

// fuse appends v to the stage group owning src, and moves that group to the end
// of the output ordering. The move is pure bookkeeping: it keeps the most
// recently extended stage easiest to find, and never alters stage numbers.
func (s *partitionState) fuse(v nemo.Vertex, src nemo.Vertex) {
	num := s.stageOf[src.ID()]
	s.stageOf[v.ID()] = num
	s.groups[num].vertices = append(s.groups[num].vertices, v)
	for i, ord := range s.order {
		if ord == num {
			s.order = append(append(s.order[:i], s.order[i+1:]...), num)
			break
		}
	}
}

// markDependent bars the stage of src from accepting any later vertex
func (s *partitionState) markDependent(src nemo.Vertex) {
	s.dependent[s.stageOf[src.ID()]] = true
}
