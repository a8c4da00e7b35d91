//go:build !mlkemasm

package mlkem

// Portable backend bindings. An accelerated build provides the same
// method set under the mlkemasm tag; call sites behave identically
// either way.

// ntt performs an in-place forward NTT, see nttGeneric for the domain
// and bound contract.
func (p *poly) ntt() {
	nttGeneric(p)
}

// invNTT performs an in-place inverse NTT, see invNTTGeneric.
func (p *poly) invNTT() {
	invNTTGeneric(p)
}

// normalize brings every coefficient into unsigned canonical form.
func (p *poly) normalize() {
	normalizeGeneric(p)
}

// toMont moves p into Montgomery form.
func (p *poly) toMont() {
	toMontGeneric(p)
}

// toBytes serializes p into buf, 12 bits per coefficient. Requires
// unsigned canonical coefficients.
func (p *poly) toBytes(buf []byte) {
	toBytesGeneric(buf, p)
}

// fromBytes deserializes p from buf; the output is bounded by 4096 but
// not reduced.
func (p *poly) fromBytes(buf []byte) {
	fromBytesGeneric(p, buf)
}

// mulcacheCompute fills c with the mulcache of the NTT-domain p.
func mulcacheCompute(c *mulcache, p *poly) {
	mulcacheComputeGeneric(c, p)
}

// basemulAcc2, basemulAcc3 and basemulAcc4 accumulate the NTT-domain
// inner product for the three supported vector lengths. The portable
// kernel is length-generic; the split entry points exist so an
// accelerated backend can specialize per length.
func basemulAcc2(r *poly, a, b []poly, bCache []mulcache) {
	basemulAccCachedGeneric(r, a[:2], b[:2], bCache[:2])
}

func basemulAcc3(r *poly, a, b []poly, bCache []mulcache) {
	basemulAccCachedGeneric(r, a[:3], b[:3], bCache[:3])
}

func basemulAcc4(r *poly, a, b []poly, bCache []mulcache) {
	basemulAccCachedGeneric(r, a[:4], b[:4], bCache[:4])
}
