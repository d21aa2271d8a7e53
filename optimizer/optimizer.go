package optimizer

import (
	"log"

	nemo "github.com/nikosnikolaidis/incubator-nemo"
)

// An Optimizer applies a fixed sequence of Passes to an execution plan DAG.
// Passes run serially, each consuming the attributes recorded by its predecessors.
type Optimizer struct {
	passes []nemo.Pass
}

// CreateOptimizer returns an Optimizer which applies the given Passes in order
func CreateOptimizer(passes ...nemo.Pass) *Optimizer {
	return &Optimizer{passes: passes}
}

// Optimize runs every Pass against dag in order, stopping at the first Pass error.
// There is no partial result on error - callers must discard the DAG's attributes
// if Optimize fails.
func (o *Optimizer) Optimize(dag nemo.DAG) (nemo.DAG, error) {
	var err error
	for _, pass := range o.passes {
		log.Printf("Running optimization pass %s over %d vertices", pass.Name(), dag.Size())
		dag, err = pass.Process(dag)
		if err != nil {
			return nil, err
		}
	}
	return dag, nil
}
