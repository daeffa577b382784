package rotation

import "github.com/hydraresearch/qarrot/internal/operation"

// computeNextIndex returns the smallest index > index that is still kept,
// or len(keep) if none remain.
func computeNextIndex(keep []bool, index int) int {
	for {
		index++
		if index >= len(keep) {
			return len(keep)
		}
		if keep[index] {
			return index
		}
	}
}

// innerReduceRotationsNoOrdering makes a single pass over ops, combining
// every pair of rotations it can regardless of adjacency (hence "no
// ordering": it is not limited to folding neighbors only), compacting out
// whatever it drops. It reports whether anything changed.
func innerReduceRotationsNoOrdering(ops *[]*operation.Operation, keep *[]bool) bool {
	*keep = (*keep)[:0]

	operations := *ops
	if len(operations) == 0 {
		return false
	}
	if len(operations) == 1 {
		if operations[0].IsIdentity() {
			*ops = operations[:0]
			return true
		}
		return false
	}

	for range operations {
		*keep = append(*keep, true)
	}
	k := *keep

	index1, index2 := 0, 1
	changed := false

outer:
	for index1 < len(operations) {
		res := tryCombineRotations(operations[index1], operations[index2])
		switch res.kind {
		case keepNeither:
			k[index1] = false
			k[index2] = false
			index1 = computeNextIndex(k, index1)
			index2 = computeNextIndex(k, index2)
			if index2 <= index1 {
				index2 = computeNextIndex(k, index1)
			}
			changed = true
		case keepFirst:
			k[index2] = false
			index2 = computeNextIndex(k, index2)
			changed = true
		case keepLast:
			k[index1] = false
			index1 = computeNextIndex(k, index1)
			changed = true
		case keepBoth:
			index2 = computeNextIndex(k, index2)
		case combineTo:
			operations[index1] = res.newOp
			k[index2] = false
			index2 = computeNextIndex(k, index2)
			changed = true
		}

		for index2 >= len(k) {
			index1 = computeNextIndex(k, index1)
			index2 = computeNextIndex(k, index1)
			if index1 >= len(k) {
				break outer
			}
		}
	}

	out := operations[:0]
	for i, o := range operations {
		if k[i] {
			out = append(out, o)
		}
	}
	*ops = out

	return changed
}

// ReduceRotationsNoOrdering repeatedly applies innerReduceRotationsNoOrdering
// to a fixed point, folding any two rotations anywhere in ops that share a
// Pauli string, independent of their position. keep is a scratch buffer the
// caller can reuse across calls to avoid reallocating it.
func ReduceRotationsNoOrdering(ops *[]*operation.Operation, keep *[]bool) bool {
	changed := innerReduceRotationsNoOrdering(ops, keep)
	overall := changed
	for changed {
		changed = innerReduceRotationsNoOrdering(ops, keep)
	}
	return overall
}

// computeNextIndexSlice is ReduceRotationsNoOrderingSlice's equivalent of
// computeNextIndex, skipping already-tombstoned (Nop) operations instead
// of consulting a separate keep vector.
func computeNextIndexSlice(ops []*operation.Operation, index int) int {
	for {
		index++
		if index >= len(ops) {
			return len(ops)
		}
		if !ops[index].IsNop() {
			return index
		}
	}
}

// innerReduceRotationsNoOrderingSlice is ReduceRotationsNoOrdering's
// fixed-layout twin: instead of compacting a slice, it tombstones dropped
// operations as Nop in place, so the slice never changes length. Used by
// the streaming backend, which cannot cheaply remove elements from the
// middle of a tempfile-backed sequence.
func innerReduceRotationsNoOrderingSlice(operations []*operation.Operation) bool {
	if len(operations) == 0 {
		return false
	}
	if len(operations) == 1 {
		if operations[0].IsIdentity() {
			operations[0].SetNop()
			return true
		}
		return false
	}

	changed := false

	index1 := 0
	for operations[index1].IsNop() {
		index1++
		if index1 >= len(operations) {
			return false
		}
	}
	index2 := computeNextIndexSlice(operations, index1)
	if index2 >= len(operations) {
		return false
	}

outer:
	for index1 < len(operations) {
		res := tryCombineRotations(operations[index1], operations[index2])
		switch res.kind {
		case keepNeither:
			operations[index1].SetNop()
			operations[index2].SetNop()
			index1 = computeNextIndexSlice(operations, index1)
			index2 = computeNextIndexSlice(operations, index2)
			if index2 <= index1 {
				index2 = computeNextIndexSlice(operations, index1)
			}
			changed = true
		case keepFirst:
			operations[index2].SetNop()
			index2 = computeNextIndexSlice(operations, index2)
			changed = true
		case keepLast:
			operations[index1].SetNop()
			index1 = computeNextIndexSlice(operations, index1)
			changed = true
		case keepBoth:
			index2 = computeNextIndexSlice(operations, index2)
		case combineTo:
			operations[index1] = res.newOp
			operations[index2].SetNop()
			index2 = computeNextIndexSlice(operations, index2)
			changed = true
		}

		for index2 >= len(operations) {
			index1 = computeNextIndexSlice(operations, index1)
			index2 = computeNextIndexSlice(operations, index1)
			if index1 >= len(operations) {
				break outer
			}
		}
	}

	return changed
}

// ReduceRotationsNoOrderingSlice repeatedly applies
// innerReduceRotationsNoOrderingSlice to a fixed point.
func ReduceRotationsNoOrderingSlice(operations []*operation.Operation) bool {
	changed := innerReduceRotationsNoOrderingSlice(operations)
	overall := changed
	for changed {
		changed = innerReduceRotationsNoOrderingSlice(operations)
	}
	return overall
}
