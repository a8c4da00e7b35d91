package mlkem

// Vector-level helpers. A polynomial vector is a []poly slice of length
// k; the domain invariant (normal/NTT) applies uniformly to all
// entries. Every helper applies its polynomial counterpart entry-wise.

// vecNTT applies the forward NTT in place to every entry.
func vecNTT(v []poly) {
	for i := range v {
		v[i].ntt()
	}
}

// vecInvNTT applies the inverse NTT in place to every entry.
func vecInvNTT(v []poly) {
	for i := range v {
		v[i].invNTT()
	}
}

// vecBarrettReduce brings every coefficient of every entry into signed
// canonical form.
func vecBarrettReduce(v []poly) {
	for i := range v {
		v[i].barrettReduce()
	}
}

// vecNormalize brings every coefficient of every entry into unsigned
// canonical form.
func vecNormalize(v []poly) {
	for i := range v {
		v[i].normalize()
	}
}

// vecAdd sets v to a + b entry-wise without reduction.
func vecAdd(v, a, b []poly) {
	for i := range v {
		v[i].add(&a[i], &b[i])
	}
}

// vecToBytes packs the vector into buf, polyBytes per entry. Requires
// unsigned canonical coefficients.
func vecToBytes(buf []byte, v []poly) {
	for i := range v {
		v[i].toBytes(buf[i*polyBytes:])
	}
}

// vecFromBytes unpacks the vector from buf. As with fromBytes, the
// coefficients are bounded by 4096 but not reduced.
func vecFromBytes(v []poly, buf []byte) {
	for i := range v {
		v[i].fromBytes(buf[i*polyBytes:])
	}
}

// vecCompressTo writes Compress_d of every entry to buf, n*d/8 bytes
// per entry. Requires unsigned canonical coefficients.
func vecCompressTo(buf []byte, v []poly, d int) {
	stride := n * d / 8
	for i := range v {
		v[i].compressTo(buf[i*stride:], d)
	}
}

// vecDecompress sets v to Decompress_d of the packed buf.
func vecDecompress(v []poly, buf []byte, d int) {
	stride := n * d / 8
	for i := range v {
		v[i].decompress(buf[i*stride:], d)
	}
}

// vecMulcacheCompute fills c with the mulcache of every entry of the
// NTT-domain vector v.
func vecMulcacheCompute(c []mulcache, v []poly) {
	for i := range v {
		mulcacheCompute(&c[i], &v[i])
	}
}
