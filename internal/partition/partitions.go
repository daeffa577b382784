// Package partition implements T-gate partitioning: grouping T-gates
// (+-pi/8 rotations) into commuting blocks so that rotations within a
// block can be reduced against each other regardless of their original
// order, followed by merging each partition's reduced rotations back into
// the circuit. Partitions is the index structure both the exact
// (commutation-driven, fixed-point) and approximate (single linear scan)
// partitioning algorithms build on.
package partition

// Partitions groups a contiguous range of T-gate indexes [0, tGates) into
// ordered partitions, represented as a flat index array plus a sorted
// list of partition-start offsets into it — the same layout as the
// original optimizer, chosen so that moving an index between partitions
// (SwapDown) is an O(1) swap-to-boundary rather than a vector insert.
type Partitions struct {
	indexes    []int
	boundaries []int
}

func New() *Partitions {
	return &Partitions{}
}

func WithCapacity(capacity int) *Partitions {
	return &Partitions{indexes: make([]int, 0, capacity), boundaries: make([]int, 0, capacity)}
}

func (p *Partitions) Len() int { return len(p.boundaries) }

func (p *Partitions) Clear() {
	p.indexes = p.indexes[:0]
	p.boundaries = p.boundaries[:0]
}

// InitOnePerTGate resets p to tGates singleton partitions, one per T-gate
// index in order.
func (p *Partitions) InitOnePerTGate(tGates int) {
	p.Clear()
	for i := 0; i < tGates; i++ {
		p.indexes = append(p.indexes, i)
		p.boundaries = append(p.boundaries, i)
	}
}

func (p *Partitions) partitionRange(partition int) (int, int) {
	start := p.boundaries[partition]
	end := len(p.indexes)
	if partition+1 < len(p.boundaries) {
		end = p.boundaries[partition+1]
	}
	return start, end
}

func (p *Partitions) startOfPartition(partition int) int {
	return p.boundaries[partition]
}

func (p *Partitions) LengthOfPartition(partition int) int {
	start, end := p.partitionRange(partition)
	return end - start
}

// At returns the index slice backing the i'th partition — the Go
// equivalent of the original's Index<usize> implementation.
func (p *Partitions) At(i int) []int {
	start, end := p.partitionRange(i)
	return p.indexes[start:end]
}

// Init rebuilds p over 0..tGates, starting a new partition at index i
// whenever forTGate(currentPartitionSoFar, i) returns true.
func (p *Partitions) Init(tGates int, forTGate func(lastPartition []int, index int) bool) {
	p.Clear()
	if tGates == 0 {
		return
	}

	for i := 0; i < tGates; i++ {
		p.indexes = append(p.indexes, i)
	}
	p.boundaries = append(p.boundaries, 0)

	for index := 1; index < tGates; index++ {
		lastBoundary := p.boundaries[len(p.boundaries)-1]
		lastPartition := p.indexes[lastBoundary:index]
		if forTGate(lastPartition, index) {
			p.boundaries = append(p.boundaries, index)
		}
	}
}

// SwapDown moves any index that `when(prevPartition, index)` accepts out
// of its own partition and into the previous one, then drops any
// partition left empty by the move. Returns whether anything moved.
func (p *Partitions) SwapDown(when func(prevPartition []int, index int) bool) bool {
	changed := false

	for partitionIndex := 1; partitionIndex < p.Len(); partitionIndex++ {
		indexIndex := 0
		for indexIndex < p.LengthOfPartition(partitionIndex) {
			prevPartition := p.At(partitionIndex - 1)
			cmpIndex := p.At(partitionIndex)[indexIndex]

			if when(prevPartition, cmpIndex) {
				changed = true
				swapWith := p.startOfPartition(partitionIndex)
				p.indexes[swapWith+indexIndex], p.indexes[swapWith] = p.indexes[swapWith], p.indexes[swapWith+indexIndex]
				p.boundaries[partitionIndex]++
			} else {
				indexIndex++
			}
		}
	}

	i := 1
	for i < len(p.boundaries) {
		if p.boundaries[i-1] == p.boundaries[i] || p.boundaries[i] >= len(p.indexes) {
			p.boundaries = append(p.boundaries[:i], p.boundaries[i+1:]...)
		} else {
			i++
		}
	}

	return changed
}

// Iter returns every partition's index slice in order, matching the
// original's ExactSizeIterator over &[usize] partitions.
func (p *Partitions) Iter() [][]int {
	out := make([][]int, p.Len())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}
