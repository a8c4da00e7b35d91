package mlkem

import "errors"

// The IND-CPA public-key encryption scheme underlying the KEM (K-PKE,
// FIPS 203 §5). All three operations are deterministic in their inputs
// and retain no state across calls.

// encryptionKey is a parsed K-PKE encryption key.
type encryptionKey struct {
	rho  [32]byte // public seed for the matrix A
	tHat []poly   // NTT(t), unsigned canonical
	aT   []poly   // A transposed, row-major, length k*k
}

// decryptionKey is a parsed K-PKE decryption key. The mulcache of the
// secret vector is computed once and reused for every decryption.
type decryptionKey struct {
	sHat   []poly // NTT(s), unsigned canonical
	sCache []mulcache
}

// expandMatrix deterministically derives the k x k matrix of NTT-domain
// polynomials from the public seed rho, cell (i, j) from the XOF stream
// over rho || j || i; the transposed flag swaps the two index bytes.
// Implements the matrix expansion of FIPS 203 Algorithms 13 and 14.
func expandMatrix(a []poly, rho []byte, transposed bool, k int) {
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if transposed {
				sampleNTT(&a[i*k+j], rho, byte(i), byte(j))
			} else {
				sampleNTT(&a[i*k+j], rho, byte(j), byte(i))
			}
		}
	}
}

// transposeMatrix transposes the k x k row-major matrix in place.
func transposeMatrix(a []poly, k int) {
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			a[i*k+j], a[j*k+i] = a[j*k+i], a[i*k+j]
		}
	}
}

// basemulAcc accumulates the cached NTT-domain inner product for the
// vector length in use. The length is a public parameter; dispatching
// on it is not secret-dependent control flow.
func basemulAcc(r *poly, a, b []poly, bCache []mulcache) {
	switch len(a) {
	case 2:
		basemulAcc2(r, a, b, bCache)
	case 3:
		basemulAcc3(r, a, b, bCache)
	case 4:
		basemulAcc4(r, a, b, bCache)
	default:
		panic("mlkem: unsupported vector length")
	}
}

// sampleNoise fills dst with centered binomial noise for consecutive
// nonces starting at nonce0, batching four lanes at a time the way the
// parallel sampler runs them. Lane batching never changes the output.
func sampleNoise(dst []poly, seed []byte, nonce0 byte, eta int) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		getNoiseX4(&dst[i], &dst[i+1], &dst[i+2], &dst[i+3], seed, nonce0+byte(i), eta)
	}
	for ; i < len(dst); i++ {
		getNoise(&dst[i], seed, nonce0+byte(i), eta)
	}
}

// pkeKeyGen derives a K-PKE key pair from the 32-byte seed d.
// Implements FIPS 203 Algorithm 13 (K-PKE.KeyGen).
func pkeKeyGen(p *parameterSet, d []byte) (*encryptionKey, *decryptionKey) {
	k := p.k

	// (rho, sigma) = G(d || k); the rank byte is domain separation
	// between the security levels.
	rho, sigma := hashG(d, []byte{byte(k)})

	ek := &encryptionKey{
		rho:  rho,
		tHat: make([]poly, k),
		aT:   make([]poly, k*k),
	}
	// Expand A first in row order; transposed to A^T below, after the
	// rows have been consumed.
	expandMatrix(ek.aT, rho[:], false, k)

	s := make([]poly, k)
	e := make([]poly, k)
	sampleNoise(s, sigma[:], 0, p.eta1)
	sampleNoise(e, sigma[:], byte(k), p.eta1)

	vecNTT(s)
	vecNormalize(s)
	vecNTT(e)

	dk := &decryptionKey{sHat: s, sCache: make([]mulcache, k)}
	vecMulcacheCompute(dk.sCache, s)

	// t = A s + e, all in NTT domain.
	for i := 0; i < k; i++ {
		ti := &ek.tHat[i]
		basemulAcc(ti, ek.aT[i*k:(i+1)*k], s, dk.sCache)

		// The inner product left a 2^(-16) factor; cancel it. The
		// coefficients are then bounded by q, plus 7q from e.
		ti.toMont()
		ti.add(ti, &e[i])
		ti.normalize()
	}

	transposeMatrix(ek.aT, k)
	return ek, dk
}

// pkeEncrypt encrypts the 32-byte msg under ek with the 32-byte
// randomness coins, writing the ciphertext to ct.
// Implements FIPS 203 Algorithm 14 (K-PKE.Encrypt).
func pkeEncrypt(ct []byte, ek *encryptionKey, msg, coins []byte, p *parameterSet) {
	k := p.k

	r := make([]poly, k)
	e1 := make([]poly, k)
	var e2 poly
	sampleNoise(r, coins, 0, p.eta1)
	sampleNoise(e1, coins, byte(k), eta2)
	getNoise(&e2, coins, byte(2*k), eta2)

	vecNTT(r)
	// Keep r bounded by q so the inner products stay inside the
	// Montgomery range.
	vecBarrettReduce(r)
	rCache := make([]mulcache, k)
	vecMulcacheCompute(rCache, r)

	// u = InvNTT(A^T r) + e1. A^T and r carry no Montgomery factor, so
	// the 2^(-16) from the inner product is cancelled by the 2^16 of
	// the inverse NTT.
	u := make([]poly, k)
	for i := 0; i < k; i++ {
		basemulAcc(&u[i], ek.aT[i*k:(i+1)*k], r, rCache)
	}
	vecBarrettReduce(u)
	vecInvNTT(u)
	vecAdd(u, u, e1)
	vecNormalize(u)
	vecCompressTo(ct, u, p.du)

	// v = InvNTT(t . r) + e2 + Decompress_1(msg).
	var v, m poly
	basemulAcc(&v, ek.tHat, r, rCache)
	v.barrettReduce()
	v.invNTT()
	m.fromMsg(msg)
	v.add(&v, &m)
	v.add(&v, &e2)
	v.normalize()
	v.compressTo(ct[k*n*p.du/8:], p.dv)
}

// pkeDecrypt recovers the 32-byte msg from ct under dk.
// Implements FIPS 203 Algorithm 15 (K-PKE.Decrypt).
func pkeDecrypt(msg []byte, dk *decryptionKey, ct []byte, p *parameterSet) {
	k := p.k

	u := make([]poly, k)
	vecDecompress(u, ct, p.du)
	vecNTT(u)

	var v poly
	v.decompress(ct[k*n*p.du/8:], p.dv)

	// m = v - InvNTT(s . NTT(u)).
	var m poly
	basemulAcc(&m, u, dk.sHat, dk.sCache)
	m.barrettReduce()
	m.invNTT()
	m.sub(&v, &m)
	m.normalize()
	m.toMsg(msg)
}

// encryptionKeyBytes serializes ek into buf in the FIPS 203 form
// ByteEncode_12(t) || rho.
func encryptionKeyBytes(buf []byte, ek *encryptionKey, p *parameterSet) {
	vecToBytes(buf, ek.tHat)
	copy(buf[p.k*polyBytes:], ek.rho[:])
}

// parseEncryptionKey parses and validates a serialized encryption key.
// Per FIPS 203 the encoded coefficients must already be canonical mod
// q: a key whose re-serialization would differ is rejected. The check
// runs on public data.
func parseEncryptionKey(b []byte, p *parameterSet) (*encryptionKey, error) {
	k := p.k
	ek := &encryptionKey{
		tHat: make([]poly, k),
		aT:   make([]poly, k*k),
	}
	vecFromBytes(ek.tHat, b)
	for i := range ek.tHat {
		for _, c := range ek.tHat[i] {
			if c >= q {
				return nil, errors.New("mlkem: encapsulation key not canonical")
			}
		}
	}
	copy(ek.rho[:], b[k*polyBytes:])
	expandMatrix(ek.aT, ek.rho[:], true, k)
	return ek, nil
}

// parseDecryptionKey parses the K-PKE portion of a decapsulation key
// and rebuilds the secret-vector mulcache.
func parseDecryptionKey(b []byte, p *parameterSet) *decryptionKey {
	dk := &decryptionKey{
		sHat:   make([]poly, p.k),
		sCache: make([]mulcache, p.k),
	}
	vecFromBytes(dk.sHat, b)
	vecNormalize(dk.sHat)
	vecMulcacheCompute(dk.sCache, dk.sHat)
	return dk
}
