package mlkem

// zetas contains the precomputed twiddle factors for the NTT in
// Montgomery form:
//
//	zetas[i] = 17^bitrev7(i) * 2^16 mod q
//
// where 17 is a primitive 256th root of unity mod q and bitrev7 is the
// bit reversal of a 7-bit number.
var zetas = [128]int16{
	2285, 2571, 2970, 1812, 1493, 1422, 287, 202, 3158, 622, 1577, 182,
	962, 2127, 1855, 1468, 573, 2004, 264, 383, 2500, 1458, 1727, 3199,
	2648, 1017, 732, 608, 1787, 411, 3124, 1758, 1223, 652, 2777, 1015,
	2036, 1491, 3047, 1785, 516, 3321, 3009, 2663, 1711, 2167, 126,
	1469, 2476, 3239, 3058, 830, 107, 1908, 3082, 2378, 2931, 961, 1821,
	2604, 448, 2264, 677, 2054, 2226, 430, 555, 843, 2078, 871, 1550,
	105, 422, 587, 177, 3094, 3038, 2869, 1574, 1653, 3083, 778, 1159,
	3182, 2552, 1483, 2727, 1119, 1739, 644, 2457, 349, 418, 329, 3173,
	3254, 817, 1097, 603, 610, 1322, 2044, 1864, 384, 2114, 3193, 1218,
	1994, 2455, 220, 2142, 1670, 2144, 1799, 2051, 794, 1819, 2475,
	2459, 478, 3221, 3021, 996, 991, 958, 1869, 1522, 1628,
}

// invNTTReductions lists, per inverse-NTT layer, which coefficients to
// Barrett reduce to keep every intermediate inside int16. The schedule
// is generated lazily (reduce a coefficient just before its butterfly
// would overflow) and is optimal, see https://eprint.iacr.org/2020/1377.
var invNTTReductions = [...]int{
	-1, // after layer 1
	-1, // after layer 2
	16, 17, 48, 49, 80, 81, 112, 113, 144, 145, 176, 177, 208, 209, 240,
	241, -1, // after layer 3
	0, 1, 32, 33, 34, 35, 64, 65, 96, 97, 98, 99, 128, 129, 160, 161, 162, 163,
	192, 193, 224, 225, 226, 227, -1, // after layer 4
	2, 3, 66, 67, 68, 69, 70, 71, 130, 131, 194, 195, 196, 197, 198,
	199, -1, // after layer 5
	4, 5, 6, 7, 132, 133, 134, 135, 136, 137, 138, 139, 140, 141, 142,
	143, -1, // after layer 6
	-1, // after layer 7
}

// nttGeneric performs an in-place forward NTT on p.
// Implements FIPS 203 Algorithm 9.
//
// The input must be bounded by q in absolute value; the output is
// bounded by 7q in absolute value. As the twiddle factors are stored in
// Montgomery form, the transform itself introduces no Montgomery
// factor: a normal-domain input yields a normal-domain output.
func nttGeneric(p *poly) {
	k := 0
	for l := n / 2; l > 1; l >>= 1 {
		// After the m-th layer the coefficients are bounded by (m+1)q.
		for offset := 0; offset < n-l; offset += 2 * l {
			k++
			zeta := int32(zetas[k])
			for j := offset; j < offset+l; j++ {
				// Cooley-Tukey butterfly.
				t := montReduce(zeta * int32(p[j+l]))
				p[j+l] = p[j] - t
				p[j] += t
			}
		}
	}
	polyBoundCheck(p, 7*q, "ntt output")
}

// invNTTGeneric performs an in-place inverse NTT on p and multiplies by
// the Montgomery factor 2^16. Implements FIPS 203 Algorithm 10.
//
// The input must be bounded by q in absolute value, which the
// lazy-reduction schedule above depends on; the output is bounded by q
// in absolute value.
func invNTTGeneric(p *poly) {
	k := 127 // index into zetas
	r := -1  // index into invNTTReductions

	// The halving of the Gentleman-Sande butterfly is postponed and
	// folded, together with the Montgomery factor, into the final
	// multiplication by invNTTScale = 128^(-1) * 2^32 mod q.
	for l := 2; l < n; l <<= 1 {
		for offset := 0; offset < n-l; offset += 2 * l {
			// zetas[k]^-1 = -zetas[k] up to the sign handled below,
			// since zeta^128 = -1.
			minZeta := int32(zetas[k])
			k--
			for j := offset; j < offset+l; j++ {
				t := p[j+l] - p[j]
				p[j] += p[j+l]
				p[j+l] = montReduce(minZeta * int32(t))
			}
		}
		for {
			r++
			i := invNTTReductions[r]
			if i < 0 {
				break
			}
			p[i] = barrettReduce(p[i])
		}
	}

	for j := 0; j < n; j++ {
		p[j] = montReduce(invNTTScale * int32(p[j]))
	}
	polyBoundCheck(p, q, "invntt output")
}

// mulcacheComputeGeneric fills c with the precomputed odd-coefficient
// twiddle products of the NTT-domain polynomial p:
//
//	c[2i]   =  p[4i+1] * zetas[64+i] * 2^(-16)
//	c[2i+1] = -p[4i+3] * zetas[64+i] * 2^(-16)
//
// so that cached base multiplication against p skips one Montgomery
// multiplication per degree-one residue. The cache entries are bounded
// by q in absolute value. It must be recomputed whenever p changes.
func mulcacheComputeGeneric(c *mulcache, p *poly) {
	for i := 0; i < n/4; i++ {
		c[2*i] = fieldMul(p[4*i+1], zetas[64+i])
		c[2*i+1] = fieldMul(p[4*i+3], -zetas[64+i])
	}
}

// basemulAccCachedGeneric accumulates into r the NTT-domain inner
// product sum_j a[j] * b[j], using the precomputed mulcache of each
// b[j]. A transformed polynomial is 128 degree-one residues; each
// residue product
//
//	(a0 + a1 X)(b0 + b1 X) = a0 b0 + a1 b1 zeta' + (a0 b1 + a1 b0) X
//
// is evaluated with the zeta' * b1 factor taken from the cache. Every
// Montgomery reduction contributes a 2^(-16) factor to the result.
//
// Requires the coefficients of each b[j] bounded by q and those of each
// a[j] bounded by 7q in absolute value. Each reduced term is bounded by
// q, so the accumulated coefficients are bounded by 2*len(a)*q, which
// fits int16 for all supported vector lengths. r must be zeroed by the
// caller.
func basemulAccCachedGeneric(r *poly, a, b []poly, bCache []mulcache) {
	for j := range a {
		aj, bj, cj := &a[j], &b[j], &bCache[j]
		for i := 0; i < n/2; i++ {
			a0, a1 := int32(aj[2*i]), int32(aj[2*i+1])
			b0, b1 := int32(bj[2*i]), int32(bj[2*i+1])

			r[2*i] += montReduce(a1*int32(cj[i])) + montReduce(a0*b0)
			r[2*i+1] += montReduce(a0*b1) + montReduce(a1*b0)
		}
	}
}
