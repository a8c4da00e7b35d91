package mlkem

// sampleNTT fills p with a uniformly random NTT-domain polynomial by
// rejection sampling from SHAKE-128 output over rho || x || y.
// Implements FIPS 203 Algorithm 7 (SampleNTT).
//
// The stream is consumed three bytes at a time, yielding two 12-bit
// candidates; candidates >= q are discarded. The output is unsigned
// canonical. The loop depends only on the public seed, never on secret
// data, and the XOF supplies unbounded output, so it always terminates.
func sampleNTT(p *poly, rho []byte, x, y byte) {
	h := newXOF(rho, x, y)

	var buf [168]byte // SHAKE128 rate
	j := 0
	for {
		h.Read(buf[:])
		for i := 0; i < len(buf) && j < n; i += 3 {
			d1 := uint16(buf[i]) | uint16(buf[i+1])<<8&0xfff
			d2 := uint16(buf[i+1])>>4 | uint16(buf[i+2])<<4
			if d1 < q {
				p[j] = int16(d1)
				j++
			}
			if d2 < q && j < n {
				p[j] = int16(d2)
				j++
			}
		}
		if j >= n {
			return
		}
	}
}

// cbd2 derives a polynomial from 2*n/4 uniformly random bytes with
// coefficients distributed as a centered binomial with eta = 2: each
// coefficient is the difference of two 2-bit popcounts, in [-2, 2].
// Implements FIPS 203 Algorithm 8 (SamplePolyCBD) for eta = 2.
func cbd2(p *poly, buf []byte) {
	for i := 0; i < n/8; i++ {
		t := uint32(buf[4*i]) | uint32(buf[4*i+1])<<8 |
			uint32(buf[4*i+2])<<16 | uint32(buf[4*i+3])<<24
		d := t&0x55555555 + t>>1&0x55555555

		for j := 0; j < 8; j++ {
			a := int16(d >> (4 * j) & 0x3)
			b := int16(d >> (4*j + 2) & 0x3)
			p[8*i+j] = a - b
		}
	}
	polyBoundCheck(p, eta2+1, "cbd2 output")
}

// cbd3 derives a polynomial from 3*n/4 uniformly random bytes with
// coefficients distributed as a centered binomial with eta = 3, in
// [-3, 3]. Only needed for ML-KEM-512.
func cbd3(p *poly, buf []byte) {
	for i := 0; i < n/4; i++ {
		t := uint32(buf[3*i]) | uint32(buf[3*i+1])<<8 | uint32(buf[3*i+2])<<16
		d := t&0x249249 + t>>1&0x249249 + t>>2&0x249249

		for j := 0; j < 4; j++ {
			a := int16(d >> (6 * j) & 0x7)
			b := int16(d >> (6*j + 3) & 0x7)
			p[4*i+j] = a - b
		}
	}
	polyBoundCheck(p, 4, "cbd3 output")
}

// sampleCBD dispatches on the noise parameter. The two fixed variants
// are the only ones FIPS 203 defines.
func sampleCBD(p *poly, buf []byte, eta int) {
	switch eta {
	case 2:
		cbd2(p, buf)
	case 3:
		cbd3(p, buf)
	default:
		panic("mlkem: unsupported eta")
	}
}

// getNoise fills p with centered binomial noise derived from
// PRF(seed, nonce).
func getNoise(p *poly, seed []byte, nonce byte, eta int) {
	buf := make([]byte, eta*n/4)
	prf(buf, seed, nonce)
	sampleCBD(p, buf, eta)
}

// getNoiseX4 fills four polynomials with noise for nonces nonce..nonce+3
// using the 4-way SHAKE-256 helper, as the accelerated backends batch
// it. The result is bit-identical to four getNoise calls.
func getNoiseX4(p0, p1, p2, p3 *poly, seed []byte, nonce byte, eta int) {
	size := eta * n / 4
	buf := make([]byte, 4*size)
	bufs := [4][]byte{buf[:size], buf[size : 2*size], buf[2*size : 3*size], buf[3*size:]}
	shake256x4(&bufs, seed, [4]byte{nonce, nonce + 1, nonce + 2, nonce + 3})
	sampleCBD(p0, bufs[0], eta)
	sampleCBD(p1, bufs[1], eta)
	sampleCBD(p2, bufs[2], eta)
	sampleCBD(p3, bufs[3], eta)
}
