package mlkem

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/montanaflynn/stats"
)

func TestSampleNTT(t *testing.T) {
	rho := make([]byte, 32)
	rand.New(rand.NewSource(20)).Read(rho)

	var p, p2, other poly
	sampleNTT(&p, rho, 1, 2)
	for i, c := range p {
		if c < 0 || c >= q {
			t.Fatalf("coefficient %d not canonical: %d", i, c)
		}
	}

	// Same seed and indices reproduce the polynomial; swapped indices
	// must give an unrelated one.
	sampleNTT(&p2, rho, 1, 2)
	if p != p2 {
		t.Fatal("sampleNTT is not deterministic")
	}
	sampleNTT(&other, rho, 2, 1)
	if p == other {
		t.Fatal("transposed indices produced the same polynomial")
	}
}

func TestSampleNTTUniform(t *testing.T) {
	// Coefficients should look uniform on [0, q): check the first two
	// moments over many polynomials. For the uniform distribution the
	// mean is (q-1)/2 and the variance (q^2-1)/12.
	rho := make([]byte, 32)
	rand.New(rand.NewSource(21)).Read(rho)

	var samples []float64
	var p poly
	for i := 0; i < 64; i++ {
		sampleNTT(&p, rho, byte(i), byte(i>>8))
		for _, c := range p {
			samples = append(samples, float64(c))
		}
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		t.Fatal(err)
	}
	variance, err := stats.PopulationVariance(samples)
	if err != nil {
		t.Fatal(err)
	}

	wantMean := float64(q-1) / 2
	wantVar := float64(q*q-1) / 12
	if math.Abs(mean-wantMean) > 0.02*wantMean {
		t.Errorf("mean = %f, want about %f", mean, wantMean)
	}
	if math.Abs(variance-wantVar) > 0.05*wantVar {
		t.Errorf("variance = %f, want about %f", variance, wantVar)
	}
}

func TestCBDDistribution(t *testing.T) {
	// A centered binomial with parameter eta has mean 0, variance eta/2
	// and support [-eta, eta], with probabilities C(2*eta, eta+v)/4^eta.
	for _, eta := range []int{2, 3} {
		seed := make([]byte, 32)
		rand.New(rand.NewSource(int64(22 + eta))).Read(seed)

		counts := make(map[int16]int)
		var samples []float64
		var p poly
		const polys = 200
		for i := 0; i < polys; i++ {
			getNoise(&p, seed, byte(i), eta)
			for _, c := range p {
				if c < int16(-eta) || c > int16(eta) {
					t.Fatalf("eta=%d: coefficient %d out of range", eta, c)
				}
				counts[c]++
				samples = append(samples, float64(c))
			}
		}

		mean, err := stats.Mean(samples)
		if err != nil {
			t.Fatal(err)
		}
		variance, err := stats.PopulationVariance(samples)
		if err != nil {
			t.Fatal(err)
		}

		wantVar := float64(eta) / 2
		if math.Abs(mean) > 0.05 {
			t.Errorf("eta=%d: mean = %f, want about 0", eta, mean)
		}
		if math.Abs(variance-wantVar) > 0.05*wantVar {
			t.Errorf("eta=%d: variance = %f, want about %f", eta, variance, wantVar)
		}

		// Per-value frequencies against the exact probabilities.
		total := float64(polys * n)
		binom := func(n2, k int) float64 {
			r := 1.0
			for i := 0; i < k; i++ {
				r = r * float64(n2-i) / float64(i+1)
			}
			return r
		}
		for v := -eta; v <= eta; v++ {
			want := binom(2*eta, eta+v) / math.Pow(4, float64(eta))
			got := float64(counts[int16(v)]) / total
			if math.Abs(got-want) > 0.1*want {
				t.Errorf("eta=%d: P[%d] = %f, want about %f", eta, v, got, want)
			}
		}
	}
}

func TestGetNoiseX4(t *testing.T) {
	// The batched sampler must match four sequential calls exactly.
	seed := make([]byte, 32)
	rand.New(rand.NewSource(25)).Read(seed)

	for _, eta := range []int{2, 3} {
		var b0, b1, b2, b3 poly
		getNoiseX4(&b0, &b1, &b2, &b3, seed, 7, eta)

		var s0, s1, s2, s3 poly
		getNoise(&s0, seed, 7, eta)
		getNoise(&s1, seed, 8, eta)
		getNoise(&s2, seed, 9, eta)
		getNoise(&s3, seed, 10, eta)

		if b0 != s0 || b1 != s1 || b2 != s2 || b3 != s3 {
			t.Fatalf("eta=%d: batched noise differs from sequential", eta)
		}
	}
}

func TestPRFDomainSeparation(t *testing.T) {
	seed := make([]byte, 32)
	rand.New(rand.NewSource(26)).Read(seed)

	out0 := make([]byte, 64)
	out1 := make([]byte, 64)
	prf(out0, seed, 0)
	prf(out1, seed, 1)
	if bytes.Equal(out0, out1) {
		t.Fatal("PRF outputs for distinct nonces are equal")
	}

	again := make([]byte, 64)
	prf(again, seed, 0)
	if !bytes.Equal(out0, again) {
		t.Fatal("PRF is not deterministic")
	}
}
