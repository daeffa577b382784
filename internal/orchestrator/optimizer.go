package orchestrator

import (
	"fmt"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/config"
	"github.com/hydraresearch/qarrot/internal/operation"
	"github.com/hydraresearch/qarrot/internal/partition"
	"github.com/hydraresearch/qarrot/internal/pushforward"
	"github.com/hydraresearch/qarrot/internal/rotation"
	"github.com/hydraresearch/qarrot/internal/textfmt"
)

// Stats summarizes a circuit's size after a push-T-forward or
// partitioning step.
type Stats = partition.Stats

// Optimizer is the common interface Run drives, implemented by
// InMemoryOptimizer and FileOptimizer.
type Optimizer interface {
	InitialCircuitLength() (int, bool)
	PostReductionLength() (int, bool)
	LatestStats() (Stats, bool)
	PushTForward() (changed bool, err error)
	Partition() (changed bool, err error)
	WriteToOutput(w textfmt.Writer) error
}

// InMemoryOptimizer holds the whole circuit as a slice. This is the
// default backend; it trades memory for speed and the exact (not
// approximate) partitioning algorithm being available.
type InMemoryOptimizer struct {
	nQubits              int
	circuit              []*operation.Operation
	initialCircuitLength int
	postReductionLength  int
	partitions           *partition.Partitions
	fullPartitioning     bool
	latestStats          Stats
	hasStats             bool
}

// NewInMemoryOptimizer drains source through a single adjacent-rotation
// folding pass, appends one single-qubit Z measurement per qubit
// (the circuit's implicit terminal measurement, exactly as the original
// always appends), and returns an optimizer ready for PushTForward/
// Partition rounds.
func NewInMemoryOptimizer(nQubits int, source OperationSource, cfg config.RunConfig) (*InMemoryOptimizer, error) {
	prealloc := 1024
	if cfg.NumOperations != nil {
		prealloc = *cfg.NumOperations
		if prealloc > config.MaxPreallocOperations {
			prealloc = config.MaxPreallocOperations
		}
	}

	circuit := make([]*operation.Operation, 0, prealloc)

	es := newErrSource(source)
	reducer := rotation.NewAdjacent(es)
	for {
		step, op := reducer.Next()
		switch step {
		case rotation.StepValue:
			circuit = append(circuit, op)
		case rotation.StepMore:
			continue
		case rotation.StepDone:
			if es.Err() != nil {
				return nil, fmt.Errorf("orchestrator: reading input circuit: %w", es.Err())
			}
			goto doneReading
		}
	}
doneReading:

	for i := 0; i < nQubits; i++ {
		circuit = append(circuit, operation.Measurement(basis.Zero(nQubits), basis.BitK(nQubits, i), operation.Positive))
	}

	return &InMemoryOptimizer{
		nQubits:              nQubits,
		circuit:              circuit,
		initialCircuitLength: reducer.PreOpCount(),
		postReductionLength:  len(circuit),
		partitions:           partition.New(),
		fullPartitioning:     cfg.FullPartitioning,
	}, nil
}

func (o *InMemoryOptimizer) InitialCircuitLength() (int, bool) { return o.initialCircuitLength, true }
func (o *InMemoryOptimizer) PostReductionLength() (int, bool)  { return o.postReductionLength, true }
func (o *InMemoryOptimizer) LatestStats() (Stats, bool)        { return o.latestStats, o.hasStats }

func (o *InMemoryOptimizer) PushTForward() (bool, error) {
	changed, tGates, out := pushforward.InPlace(o.circuit, o.nQubits)
	o.circuit = out
	o.latestStats = Stats{TotalOperations: len(o.circuit), TGates: tGates}
	o.hasStats = true
	return changed, nil
}

func (o *InMemoryOptimizer) Partition() (bool, error) {
	if !o.hasStats {
		return false, fmt.Errorf("orchestrator: Partition called before PushTForward")
	}

	if o.fullPartitioning {
		out, changed := partition.PartitionTGates(o.partitions, o.circuit, o.latestStats.TGates)
		o.circuit = out
		o.latestStats = Stats{TotalOperations: len(o.circuit), TGates: countTGates(o.circuit)}
		return changed, nil
	}

	out, changed, stats := partition.ApproximatePartitionTGates(o.circuit)
	o.circuit = out
	o.latestStats = stats
	return changed, nil
}

func (o *InMemoryOptimizer) WriteToOutput(w textfmt.Writer) error {
	for _, op := range o.circuit {
		if op.IsNop() {
			continue
		}
		if err := w.WriteOperation(o.nQubits, op); err != nil {
			return fmt.Errorf("orchestrator: writing operation: %w", err)
		}
	}
	return w.Flush()
}

var _ Optimizer = (*InMemoryOptimizer)(nil)

func countTGates(circuit []*operation.Operation) int {
	n := 0
	for _, op := range circuit {
		if op.IsRotation() && op.Angle.IsPi8() {
			n++
		}
	}
	return n
}
