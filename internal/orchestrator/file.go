package orchestrator

import (
	"fmt"
	"io"

	"github.com/hydraresearch/qarrot/internal/basis"
	"github.com/hydraresearch/qarrot/internal/clifford"
	"github.com/hydraresearch/qarrot/internal/config"
	"github.com/hydraresearch/qarrot/internal/operation"
	"github.com/hydraresearch/qarrot/internal/pushforward"
	"github.com/hydraresearch/qarrot/internal/rotation"
	"github.com/hydraresearch/qarrot/internal/streaming"
	"github.com/hydraresearch/qarrot/internal/textfmt"
)

// FileOptimizer is the big-file backend: it never holds the whole
// circuit in memory, instead streaming a bounded-size buffer through a
// pair of locked swap files (internal/streaming.ReadWriteSwap) one round
// at a time. It only ever supports the fast approximate partitioner,
// since exact partitioning needs every T-gate available for reordering
// at once.
type FileOptimizer struct {
	nQubits            int
	targetBufferLength int
	circuitBuffer      []*operation.Operation

	reducer       *rotation.Adjacent
	reducerSource *errSource
	reducerDone   bool

	initialCircuitLength int
	hasInitialLength     bool

	latestStats Stats
	hasStats    bool

	files *streaming.ReadWriteSwap
}

// NewFileOptimizer opens a pair of locked temp files to ping-pong the
// circuit through and wraps source in the same adjacent-rotation folder
// InMemoryOptimizer uses, but draining it lazily in bounded chunks
// instead of all at once.
func NewFileOptimizer(nQubits int, source OperationSource, cfg config.RunConfig) (*FileOptimizer, error) {
	files, err := streaming.NewTempReadWriteSwap()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: opening swap files: %w", err)
	}

	es := newErrSource(source)
	return &FileOptimizer{
		nQubits:            nQubits,
		targetBufferLength: cfg.TargetBufferLength,
		circuitBuffer:      make([]*operation.Operation, 0, cfg.TargetBufferLength),
		reducer:            rotation.NewAdjacent(es),
		reducerSource:      es,
		files:              files,
	}, nil
}

func (o *FileOptimizer) InitialCircuitLength() (int, bool) { return o.initialCircuitLength, o.hasInitialLength }

// PostReductionLength is never known up front by this backend: the
// circuit is never materialized as a whole, only streamed through in
// target-buffer-sized chunks.
func (o *FileOptimizer) PostReductionLength() (int, bool) { return 0, false }

func (o *FileOptimizer) LatestStats() (Stats, bool) { return o.latestStats, o.hasStats }

// readFromSource refills circuitBuffer from whichever source is
// currently active: the folding reducer while the input is still being
// drained (appending the nQubits terminal measurement operations once it
// runs dry), then the read side of the swap files for every subsequent
// round. A return of (0, nil) means the source is exhausted for this
// pass.
func (o *FileOptimizer) readFromSource() (int, error) {
	o.circuitBuffer = o.circuitBuffer[:0]

	if !o.reducerDone {
		for {
			step, op := o.reducer.Next()
			if step == rotation.StepValue {
				o.circuitBuffer = append(o.circuitBuffer, op)
			}
			if step == rotation.StepDone {
				if o.reducerSource.Err() != nil {
					return 0, fmt.Errorf("orchestrator: reading input circuit: %w", o.reducerSource.Err())
				}
				o.reducerDone = true
				o.initialCircuitLength = o.reducer.PreOpCount()
				o.hasInitialLength = true
				for i := 0; i < o.nQubits; i++ {
					o.circuitBuffer = append(o.circuitBuffer, operation.Measurement(basis.Zero(o.nQubits), basis.BitK(o.nQubits, i), operation.Positive))
				}
				break
			}
			if len(o.circuitBuffer) >= o.targetBufferLength {
				break
			}
		}
		return len(o.circuitBuffer), nil
	}

	f := o.files.Read()
	for len(o.circuitBuffer) < o.targetBufferLength {
		op, err := streaming.ReadOperation(f, o.nQubits)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("orchestrator: reading swap file: %w", err)
		}
		o.circuitBuffer = append(o.circuitBuffer, op)
	}
	return len(o.circuitBuffer), nil
}

func (o *FileOptimizer) writeBufToSink(buf []*operation.Operation) error {
	w := o.files.Write()
	for _, op := range buf {
		if err := streaming.WriteOperation(w, o.nQubits, op); err != nil {
			return fmt.Errorf("orchestrator: writing swap file: %w", err)
		}
	}
	return nil
}

// PushTForward streams the circuit through once: fill circuitBuffer from
// the current read source, push every operation in it through a single
// running Clifford accumulator, write what's left to the current write
// sink, repeat until the source runs dry, then swap read and write
// roles for the next round.
func (o *FileOptimizer) PushTForward() (bool, error) {
	changed := false
	stats := Stats{}

	accumulator := clifford.Identity(o.nQubits)
	cliffordBuf := clifford.Identity(o.nQubits)

	for {
		n, err := o.readFromSource()
		if err != nil {
			return false, fmt.Errorf("orchestrator: pushing T gates forward: %w", err)
		}
		if n == 0 {
			break
		}
		outIndex := 0
		for i := range o.circuitBuffer {
			didChange, wasTGate, newOp := pushforward.PushAccumulator(accumulator, cliffordBuf, o.circuitBuffer[i])
			changed = changed || didChange
			if wasTGate {
				stats.TGates++
			}
			if newOp != nil {
				o.circuitBuffer[outIndex] = newOp
				outIndex++
			}
		}
		o.circuitBuffer = o.circuitBuffer[:outIndex]
		stats.TotalOperations += outIndex

		if err := o.writeBufToSink(o.circuitBuffer); err != nil {
			return false, fmt.Errorf("orchestrator: pushing T gates forward: %w", err)
		}
	}

	if err := o.files.Swap(); err != nil {
		return false, fmt.Errorf("orchestrator: pushing T gates forward: %w", err)
	}

	o.latestStats = stats
	o.hasStats = true
	return changed, nil
}

// Partition runs the streaming approximate partitioner: it walks the
// circuit one buffer at a time, growing a "current partition" of
// consecutive T-gates as long as each new T-gate commutes with every
// T-gate already in it, flushing (reducing, then appending to a write
// buffer) whenever a non-rotation or a non-commuting T-gate closes the
// partition. Buffered writes avoid a syscall per operation.
func (o *FileOptimizer) Partition() (bool, error) {
	var lastPartition []*operation.Operation
	var writeBuf []*operation.Operation
	changed := false
	stats := Stats{}

	flush := func() error {
		changed = rotation.ReduceRotationsNoOrderingSlice(lastPartition) || changed
		for _, op := range lastPartition {
			if op.IsNop() {
				continue
			}
			writeBuf = append(writeBuf, op)
			stats.TotalOperations++
			if op.IsRotation() && op.Angle.IsPi8() {
				stats.TGates++
			}
		}
		lastPartition = lastPartition[:0]
		if len(writeBuf) >= o.targetBufferLength {
			if err := o.writeBufToSink(writeBuf); err != nil {
				return err
			}
			writeBuf = writeBuf[:0]
		}
		return nil
	}

	for {
		n, err := o.readFromSource()
		if err != nil {
			return false, fmt.Errorf("orchestrator: partitioning: %w", err)
		}
		if n == 0 {
			break
		}

		for _, op := range o.circuitBuffer {
			if !op.IsRotation() {
				lastPartition = append(lastPartition, op)
				if err := flush(); err != nil {
					return false, fmt.Errorf("orchestrator: partitioning: %w", err)
				}
				continue
			}

			commutesWithAll := true
			for _, cmp := range lastPartition {
				if !cmp.CommutesWithLikely(op) {
					commutesWithAll = false
					break
				}
			}

			if !commutesWithAll {
				if err := flush(); err != nil {
					return false, fmt.Errorf("orchestrator: partitioning: %w", err)
				}
			}
			lastPartition = append(lastPartition, op)
		}
	}

	if len(lastPartition) > 0 {
		if err := flush(); err != nil {
			return false, fmt.Errorf("orchestrator: partitioning: %w", err)
		}
	}
	if err := o.writeBufToSink(writeBuf); err != nil {
		return false, fmt.Errorf("orchestrator: partitioning: %w", err)
	}

	if err := o.files.Swap(); err != nil {
		return false, fmt.Errorf("orchestrator: partitioning: %w", err)
	}

	o.latestStats = stats
	o.hasStats = true
	return changed, nil
}

func (o *FileOptimizer) WriteToOutput(w textfmt.Writer) error {
	for {
		n, err := o.readFromSource()
		if err != nil {
			return fmt.Errorf("orchestrator: writing output: %w", err)
		}
		if n == 0 {
			break
		}
		for _, op := range o.circuitBuffer {
			if op.IsNop() {
				continue
			}
			if err := w.WriteOperation(o.nQubits, op); err != nil {
				return fmt.Errorf("orchestrator: writing output: %w", err)
			}
		}
	}
	return w.Flush()
}

var _ Optimizer = (*FileOptimizer)(nil)
