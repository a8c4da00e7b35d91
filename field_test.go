package mlkem

import (
	"math/rand"
	"testing"
)

// modQ reduces to the representative in [0, q) using wide arithmetic,
// the reference the optimized reductions are checked against.
func modQ(x int64) int64 {
	r := x % q
	if r < 0 {
		r += q
	}
	return r
}

// rInv is 2^(-16) mod q, found by brute force so the test does not
// depend on the package constants.
func rInv() int64 {
	for y := int64(1); y < q; y++ {
		if modQ(65536*y) == 1 {
			return y
		}
	}
	panic("no inverse")
}

func TestMontReduce(t *testing.T) {
	inv := rInv()

	check := func(x int32) {
		got := montReduce(x)
		if got <= -q || got >= q {
			t.Fatalf("montReduce(%d) = %d, out of (-q, q)", x, got)
		}
		if modQ(int64(got)) != modQ(int64(x)*inv) {
			t.Fatalf("montReduce(%d) = %d, want congruent to %d", x, got, modQ(int64(x)*inv))
		}
	}

	const bound = q * (1 << 15)
	check(0)
	check(bound - 1)
	check(-(bound - 1))
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		check(rnd.Int31n(bound*2-1) - (bound - 1))
	}
}

func TestBarrettReduce(t *testing.T) {
	for x := -32768; x <= 32767; x++ {
		got := barrettReduce(int16(x))
		if got <= -(q+1)/2 || got > q/2+1 {
			t.Fatalf("barrettReduce(%d) = %d, out of signed canonical range", x, got)
		}
		if modQ(int64(got)) != modQ(int64(x)) {
			t.Fatalf("barrettReduce(%d) = %d, not congruent", x, got)
		}

		u := toUnsigned(got)
		if u != int16(modQ(int64(x))) {
			t.Fatalf("toUnsigned(barrettReduce(%d)) = %d, want %d", x, u, modQ(int64(x)))
		}
	}
}

func TestToMont(t *testing.T) {
	for x := -q + 1; x < q; x++ {
		got := toMont(int16(x))
		if got <= -q || got >= q {
			t.Fatalf("toMont(%d) = %d, out of (-q, q)", x, got)
		}
		if modQ(int64(got)) != modQ(int64(x)*65536) {
			t.Fatalf("toMont(%d) = %d, want congruent to %d", x, got, modQ(int64(x)*65536))
		}
	}
}

func TestCmovInt16(t *testing.T) {
	x := int16(123)
	cmovInt16(&x, 456, 0)
	if x != 123 {
		t.Fatalf("cmov with b=0 moved: %d", x)
	}
	cmovInt16(&x, 456, 1)
	if x != 456 {
		t.Fatalf("cmov with b=1 did not move: %d", x)
	}
}

// refCompress is round(x * 2^d / q) mod 2^d evaluated with wide
// integers. round half up; a tie cannot occur since q is odd.
func refCompress(x uint16, d int) uint16 {
	return uint16((uint64(x)<<d+q/2)/q) & (1<<d - 1)
}

func TestScalarCompress(t *testing.T) {
	for _, d := range []int{1, 4, 5, 10, 11} {
		for x := uint16(0); x < q; x++ {
			if got, want := scalarCompress(x, d), refCompress(x, d); got != want {
				t.Fatalf("scalarCompress(%d, %d) = %d, want %d", x, d, got, want)
			}
		}
	}
}

func TestScalarCompress1(t *testing.T) {
	for x := uint16(0); x < q; x++ {
		// round(2x/q) mod 2; 2x/q is never a half-integer, so
		// floor((2x + (q-1)/2) / q) computes the rounding exactly.
		want := uint16((2*uint32(x)+(q-1)/2)/q) & 1
		if got := scalarCompress1(x); got != want {
			t.Fatalf("scalarCompress1(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestScalarDecompressRoundTrip(t *testing.T) {
	for _, d := range []int{1, 4, 5, 10, 11} {
		// Round-trip error bound from FIPS 203 Lemma: the centered
		// distance is at most round(q / 2^(d+1)).
		maxErr := int64((q + (1 << d)) / (1 << (d + 1)))
		for x := uint16(0); x < q; x++ {
			y := scalarDecompress(scalarCompress(x, d), d)
			if y >= q {
				t.Fatalf("d=%d: decompress(%d) = %d, not canonical", d, x, y)
			}
			diff := modQ(int64(y) - int64(x))
			if diff > q/2 {
				diff = q - diff
			}
			if diff > maxErr {
				t.Fatalf("d=%d: |decompress(compress(%d)) - %d| = %d > %d", d, x, x, diff, maxErr)
			}
		}
	}
}

func TestScalarDecompressExactInverse(t *testing.T) {
	// Compress is a left inverse of decompress for every d-bit value.
	for _, d := range []int{1, 4, 5, 10, 11} {
		for y := uint16(0); y < 1<<d; y++ {
			if got := scalarCompress(scalarDecompress(y, d), d); got != y {
				t.Fatalf("d=%d: compress(decompress(%d)) = %d", d, y, got)
			}
		}
	}
}
