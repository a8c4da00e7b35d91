package mlkem

// Coefficients are kept as int16 values in one of two canonical forms:
//
//   - signed canonical: the representative in (-q/2, q/2], produced by
//     barrettReduce;
//   - unsigned canonical: the representative in [0, q), produced by
//     toUnsigned.
//
// Functions below document which form they require and produce. None of
// them branch on coefficient values.

// Montgomery form constants for R = 2^16.
const (
	// qInv = q^(-1) mod 2^16
	qInv = 62209
	// montR2 = 2^32 mod q, used to move values into Montgomery form.
	montR2 = 1353
	// invNTTScale = 128^(-1) * 2^32 mod q, folded into the last layer of
	// the inverse NTT.
	invNTTScale = 1441
)

// montReduce computes x * 2^(-16) mod q in signed canonical-ish form.
// Requires |x| < q * 2^15; the result r satisfies |r| < q.
func montReduce(x int32) int16 {
	// m = x * q^(-1) mod 2^16, taken as a signed 16-bit value.
	m := int16(x * qInv)
	return int16((x - int32(m)*q) >> 16)
}

// fieldMul returns a * b * 2^(-16) mod q. Requires |a*b| < q * 2^15,
// which holds whenever one factor is bounded by q in absolute value.
func fieldMul(a, b int16) int16 {
	return montReduce(int32(a) * int32(b))
}

// toMont returns x * 2^16 mod q, moving x into Montgomery form. The
// result is bounded by q in absolute value.
func toMont(x int16) int16 {
	return fieldMul(x, montR2)
}

// barrettReduce maps any int16 value to its signed canonical
// representative in (-q/2, q/2]. The multiplier is round(2^26 / q).
func barrettReduce(x int16) int16 {
	const multiplier = 20159
	t := int16((int32(x)*multiplier + (1 << 25)) >> 26)
	return x - t*q
}

// toUnsigned maps a signed canonical value to the unsigned canonical
// representative in [0, q) by a conditional addition of q, evaluated
// with mask arithmetic rather than a branch.
func toUnsigned(x int16) int16 {
	return x + (x>>15)&q
}

// cmovInt16 overwrites *dst with v if b is 1 and leaves it unchanged if
// b is 0, without a data-dependent branch.
func cmovInt16(dst *int16, v int16, b uint16) {
	mask := -int16(b)
	*dst ^= mask & (*dst ^ v)
}

// scalarCompress computes Compress_d(x) = round(x * 2^d / q) mod 2^d
// per FIPS 203 eq. (4.5), with round-half-up (a tie never occurs since q
// is odd). Requires x unsigned canonical and 1 <= d < 12.
//
// The division is by the constant q and compiles to a multiply-shift;
// there is no variable-time divide.
func scalarCompress(x uint16, d int) uint16 {
	return uint16(((uint32(x)<<d)+q/2)/q) & (1<<d - 1)
}

// scalarDecompress computes Decompress_d(y) = round(y * q / 2^d) per
// FIPS 203 eq. (4.6). The result is unsigned canonical. Requires
// y < 2^d and 1 <= d < 12.
func scalarDecompress(y uint16, d int) uint16 {
	return uint16((uint32(y)*q + 1<<(d-1)) >> d)
}

// scalarCompress1 computes Compress_1(x) for an unsigned canonical x.
// It evaluates round(2x/q) mod 2 through the fixed-point multiplier
// floor(2^28 / q) = 80635 instead of a division, following the
// constant-time form of FIPS 203 eq. (4.7).
func scalarCompress1(x uint16) uint16 {
	t := (uint32(x) << 1) + halfQ
	t *= 80635
	t >>= 28
	return uint16(t & 1)
}
