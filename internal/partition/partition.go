package partition

import (
	"log/slog"

	"github.com/hydraresearch/qarrot/internal/operation"
	"github.com/hydraresearch/qarrot/internal/rotation"
)

// Stats summarizes a circuit after a partitioning pass.
type Stats struct {
	TotalOperations int
	TGates          int
}

// UpdateTGatePartitions repeatedly swaps any T-gate that commutes with
// every T-gate in the partition before it down into that partition, until
// a fixed point is reached. circuit[i] for i in [0, len(partitions indexes))
// must be the T-gate the partition index i refers to.
func UpdateTGatePartitions(circuit []*operation.Operation, partitions *Partitions) bool {
	partitionsChanged := true
	anyChanged := false
	for partitionsChanged {
		partitionsChanged = partitions.SwapDown(func(prevPartition []int, thisRotation int) bool {
			for _, prevIndex := range prevPartition {
				if !circuit[thisRotation].CommutesWithLikely(circuit[prevIndex]) {
					return false
				}
			}
			return true
		})
		anyChanged = anyChanged || partitionsChanged
	}
	return anyChanged
}

// mergePartitions reduces the rotations within each partition against
// each other (order-independent), then rebuilds circuit as: the combined,
// reduced T-gates in partition order, followed by every non-T-gate
// operation that followed the original T-gate block unchanged.
func mergePartitions(circuit []*operation.Operation, partitions *Partitions, tGateCount, originalLen int) ([]*operation.Operation, bool) {
	slog.Debug("merging partitions", "count", partitions.Len())

	var layerBuf []*operation.Operation
	var combinedTGates []*operation.Operation
	var indexBuf []bool
	changed := false

	for _, part := range partitions.Iter() {
		layerBuf = layerBuf[:0]
		for _, element := range part {
			layerBuf = append(layerBuf, circuit[element])
		}
		changed = rotation.ReduceRotationsNoOrdering(&layerBuf, &indexBuf) || changed
		combinedTGates = append(combinedTGates, layerBuf...)
	}

	rest := make([]*operation.Operation, 0, len(circuit)-tGateCount)
	rest = append(rest, circuit[tGateCount:]...)

	out := make([]*operation.Operation, 0, originalLen)
	out = append(out, combinedTGates...)
	out = append(out, rest...)

	slog.Debug("final operation count", "count", len(out), "changed", changed)

	return out, changed
}

// PartitionTGates runs the exact partitioning algorithm: start with one
// T-gate per partition, repeatedly swap-down to merge every T-gate into
// the earliest partition it commutes with entirely, then merge and reduce
// each resulting partition. circuit's first tGateCount operations must be
// exactly the T-gates, in order; everything after them is left alone
// except for being moved to follow the (possibly shorter) reduced T-gate
// block.
func PartitionTGates(partitions *Partitions, circuit []*operation.Operation, tGateCount int) ([]*operation.Operation, bool) {
	originalLen := len(circuit)
	slog.Debug("starting t gate partition", "operations", originalLen)

	if tGateCount == 0 {
		slog.Debug("no t gates, returning")
		return circuit, false
	}

	partitions.Clear()
	partitions.InitOnePerTGate(tGateCount)

	rounds := 1
	partitionsChanged := true
	for partitionsChanged {
		slog.Debug("running partition round", "round", rounds+1, "partitions", partitions.Len())
		partitionsChanged = UpdateTGatePartitions(circuit, partitions)
		rounds++
	}

	slog.Debug("done creating partitions", "count", partitions.Len())
	return mergePartitions(circuit, partitions, tGateCount, originalLen)
}

// ApproximatePartitionTGates is the fast, single-linear-scan partitioner:
// it walks the circuit once, growing a "current partition" of consecutive
// T-gates as long as each new T-gate commutes with every T-gate already
// in the partition, closing the partition (and reducing it in place, via
// the tombstoning ReduceRotationsNoOrderingSlice) whenever it hits a
// non-rotation or a T-gate that doesn't commute with the whole partition.
// Unlike PartitionTGates it never reorders operations, so it needs no
// separate merge step — it trades partition quality for a single O(n)
// pass instead of a fixed-point loop.
func ApproximatePartitionTGates(circuit []*operation.Operation) ([]*operation.Operation, bool, Stats) {
	originalLen := len(circuit)
	slog.Debug("starting whole circuit t gate partition (approximate)", "operations", originalLen)

	partitionStart := -1
	partitions := 0
	lastRotationIndex := 0
	changed := false

	for newIndex := 0; newIndex < len(circuit); newIndex++ {
		if !circuit[newIndex].IsRotation() {
			if partitionStart >= 0 {
				changed = rotation.ReduceRotationsNoOrderingSlice(circuit[partitionStart:newIndex]) || changed
			}
			partitionStart = -1
			continue
		}
		lastRotationIndex = newIndex
		if partitionStart < 0 {
			partitionStart = newIndex
			continue
		}

		commutesWithAll := true
		for prevIndex := partitionStart; prevIndex < newIndex; prevIndex++ {
			if !circuit[newIndex].CommutesWithLikely(circuit[prevIndex]) {
				commutesWithAll = false
				break
			}
		}

		if !commutesWithAll {
			partitions++
			changed = rotation.ReduceRotationsNoOrderingSlice(circuit[partitionStart:newIndex]) || changed
			partitionStart = newIndex
		}
	}

	if partitionStart >= 0 {
		changed = rotation.ReduceRotationsNoOrderingSlice(circuit[partitionStart:lastRotationIndex+1]) || changed
	}

	slog.Debug("done partitioning and reducing, cleaning removed rotations", "partitions", partitions)

	out := circuit[:0]
	for _, op := range circuit {
		if !op.IsNop() {
			out = append(out, op)
		}
	}

	stats := Stats{TotalOperations: len(out)}
	for _, op := range out {
		if op.IsRotation() && op.Angle.IsPi8() {
			stats.TGates++
		}
	}

	return out, changed, stats
}
