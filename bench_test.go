package rope

import (
	"math/rand"
	"testing"
)

func benchmarkSliceInsert(factor int, b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	var s []int
	for n := 0; n < factor*b.N; n++ {
		off := rnd.Intn(len(s) + 1)
		s = append(s, 0)
		copy(s[off+1:], s[off:])
		s[off] = n
	}
}

func BenchmarkSliceInsert1(b *testing.B)   { benchmarkSliceInsert(1, b) }
func BenchmarkSliceInsert10(b *testing.B)  { benchmarkSliceInsert(10, b) }
func BenchmarkSliceInsert100(b *testing.B) { benchmarkSliceInsert(100, b) }
func BenchmarkSliceInsert1k(b *testing.B)  { benchmarkSliceInsert(1_000, b) }
func BenchmarkSliceInsert10k(b *testing.B) { benchmarkSliceInsert(10_000, b) }

func benchmarkRopeInsert(factor int, b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	r := New[int]()
	for n := 0; n < factor*b.N; n++ {
		r, _ = r.Insert(rnd.Intn(r.Len()+1), n)
	}
}

func BenchmarkRopeInsert1(b *testing.B)   { benchmarkRopeInsert(1, b) }
func BenchmarkRopeInsert10(b *testing.B)  { benchmarkRopeInsert(10, b) }
func BenchmarkRopeInsert100(b *testing.B) { benchmarkRopeInsert(100, b) }
func BenchmarkRopeInsert1k(b *testing.B)  { benchmarkRopeInsert(1_000, b) }
func BenchmarkRopeInsert10k(b *testing.B) { benchmarkRopeInsert(10_000, b) }

func benchmarkRopeGet(size int, b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	r := New[int]()
	for n := 0; n < size; n++ {
		r, _ = r.Insert(rnd.Intn(r.Len()+1), n)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_, _ = r.Get(n % size)
	}
}

func BenchmarkRopeGet1k(b *testing.B)   { benchmarkRopeGet(1_000, b) }
func BenchmarkRopeGet10k(b *testing.B)  { benchmarkRopeGet(10_000, b) }
func BenchmarkRopeGet100k(b *testing.B) { benchmarkRopeGet(100_000, b) }

func benchmarkRopeRebalance(size int, b *testing.B) {
	r := New[int]()
	r.SetAutoRebalance(false)
	for n := 0; n < size; n++ {
		r, _ = r.Insert(r.Len(), n)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_, _ = r.Rebalance()
	}
}

func BenchmarkRopeRebalance1k(b *testing.B)  { benchmarkRopeRebalance(1_000, b) }
func BenchmarkRopeRebalance10k(b *testing.B) { benchmarkRopeRebalance(10_000, b) }
