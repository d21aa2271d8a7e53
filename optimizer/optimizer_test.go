package optimizer

import (
	"fmt"
	"testing"

	nemo "github.com/nikosnikolaidis/incubator-nemo"
	"github.com/stretchr/testify/require"
)

// recordingPass records its Name into a shared log when run
type recordingPass struct {
	name string
	log  *[]string
	fail bool
}

func (p *recordingPass) Name() string {
	return p.name
}

func (p *recordingPass) Process(dag nemo.DAG) (nemo.DAG, error) {
	*p.log = append(*p.log, p.name)
	if p.fail {
		return nil, fmt.Errorf("pass %s failed", p.name)
	}
	return dag, nil
}

func TestOptimizerRunsPassesInOrder(t *testing.T) {
	a := createTestVertex("a")
	dag := buildTestDAG(t, []nemo.Vertex{a}, nil)

	var ran []string
	opt := CreateOptimizer(
		&recordingPass{name: "first", log: &ran},
		&recordingPass{name: "second", log: &ran},
		CreateStagePartitioningPass(),
	)
	out, err := opt.Optimize(dag)
	require.Nil(t, err)
	require.Equal(t, []string{"first", "second"}, ran)
	require.Equal(t, 0, stageOf(t, a))
	require.Equal(t, 1, out.Size())
}

func TestOptimizerStopsAtFirstFailingPass(t *testing.T) {
	a := createTestVertex("a")
	dag := buildTestDAG(t, []nemo.Vertex{a}, nil)

	var ran []string
	opt := CreateOptimizer(
		&recordingPass{name: "first", log: &ran, fail: true},
		&recordingPass{name: "second", log: &ran},
	)
	_, err := opt.Optimize(dag)
	require.NotNil(t, err)
	require.Equal(t, []string{"first"}, ran)
}
