package partition

import (
	"reflect"
	"testing"
)

func TestBasicOnePerTGate(t *testing.T) {
	p := New()
	p.InitOnePerTGate(5)
	if p.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", p.Len())
	}
	if !reflect.DeepEqual(p.indexes, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("indexes = %v, want [0 1 2 3 4]", p.indexes)
	}
	if !reflect.DeepEqual(p.boundaries, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("boundaries = %v, want [0 1 2 3 4]", p.boundaries)
	}
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(p.At(i), []int{i}) {
			t.Fatalf("At(%d) = %v, want [%d]", i, p.At(i), i)
		}
	}
}

func TestInitNoSplits(t *testing.T) {
	p := New()
	p.Init(2, func(_ []int, _ int) bool { return false })
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if !reflect.DeepEqual(p.boundaries, []int{0}) {
		t.Fatalf("boundaries = %v, want [0]", p.boundaries)
	}
	if !reflect.DeepEqual(p.At(0), []int{0, 1}) {
		t.Fatalf("At(0) = %v, want [0 1]", p.At(0))
	}

	p2 := New()
	p2.Init(3, func(_ []int, _ int) bool { return false })
	if p2.Len() != 1 || !reflect.DeepEqual(p2.At(0), []int{0, 1, 2}) {
		t.Fatalf("expected a single 3-element partition")
	}
}

func TestInitWithSplit(t *testing.T) {
	p := New()
	p.Init(3, func(_ []int, thisIndex int) bool { return thisIndex == 2 })
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if !reflect.DeepEqual(p.boundaries, []int{0, 2}) {
		t.Fatalf("boundaries = %v, want [0 2]", p.boundaries)
	}
	if !reflect.DeepEqual(p.At(0), []int{0, 1}) {
		t.Fatalf("At(0) = %v, want [0 1]", p.At(0))
	}
	if !reflect.DeepEqual(p.At(1), []int{2}) {
		t.Fatalf("At(1) = %v, want [2]", p.At(1))
	}
}

func TestSwapDownSingle(t *testing.T) {
	p := New()
	p.Init(3, func(_ []int, thisIndex int) bool { return thisIndex == 2 })
	p.SwapDown(func(_ []int, _ int) bool { return true })
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if !reflect.DeepEqual(p.boundaries, []int{0}) {
		t.Fatalf("boundaries = %v, want [0]", p.boundaries)
	}
}

func TestSwapDownOneOfTwo(t *testing.T) {
	p := New()
	p.InitOnePerTGate(3)

	p.SwapDown(func(_ []int, i int) bool { return i == 2 })
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if !reflect.DeepEqual(p.boundaries, []int{0, 1}) {
		t.Fatalf("boundaries = %v, want [0 1]", p.boundaries)
	}

	p.SwapDown(func(_ []int, _ int) bool { return true })
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if !reflect.DeepEqual(p.boundaries, []int{0}) {
		t.Fatalf("boundaries = %v, want [0]", p.boundaries)
	}
}
