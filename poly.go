package mlkem

// poly is a polynomial with n coefficients in Z_q, the element type of
// the quotient ring Z_q[X]/(X^256+1).
//
// The same type holds both normal-domain and NTT-domain polynomials;
// the domain is an invariant tracked by the caller, not stored in the
// value. Coefficients are not always reduced; each operation documents
// its input and output bounds.
type poly [n]int16

// mulcache holds the precomputed twiddle products of one NTT-domain
// polynomial, see mulcacheComputeGeneric. It is tied to the polynomial
// it was computed from and must never be shared across different ones.
type mulcache [n / 2]int16

// add sets p to a + b coefficient-wise. No reduction is performed; the
// caller tracks the growing bound.
func (p *poly) add(a, b *poly) {
	for i := 0; i < n; i++ {
		p[i] = a[i] + b[i]
	}
}

// sub sets p to a - b coefficient-wise. No reduction is performed; the
// caller tracks the growing bound.
func (p *poly) sub(a, b *poly) {
	for i := 0; i < n; i++ {
		p[i] = a[i] - b[i]
	}
}

// barrettReduce brings every coefficient into signed canonical form.
func (p *poly) barrettReduce() {
	for i := 0; i < n; i++ {
		p[i] = barrettReduce(p[i])
	}
}

// normalizeGeneric brings every coefficient into unsigned canonical
// form [0, q).
func normalizeGeneric(p *poly) {
	for i := 0; i < n; i++ {
		p[i] = toUnsigned(barrettReduce(p[i]))
	}
	polyUBoundCheck(p, q, "normalize output")
}

// toMontGeneric multiplies every coefficient by 2^16 mod q, moving p
// into Montgomery form. The output is bounded by q in absolute value.
func toMontGeneric(p *poly) {
	for i := 0; i < n; i++ {
		p[i] = toMont(p[i])
	}
}

// toBytesGeneric packs p into buf using 12 bits per coefficient, three
// bytes per coefficient pair. Implements FIPS 203 ByteEncode_12.
// Requires unsigned canonical coefficients; buf must be polyBytes long.
func toBytesGeneric(buf []byte, p *poly) {
	polyUBoundCheck(p, q, "tobytes input")
	for i := 0; i < n/2; i++ {
		t0 := uint16(p[2*i])
		t1 := uint16(p[2*i+1])
		buf[3*i] = byte(t0)
		buf[3*i+1] = byte(t0>>8) | byte(t1<<4)
		buf[3*i+2] = byte(t1 >> 4)
	}
}

// fromBytesGeneric unpacks p from buf, the inverse of toBytesGeneric.
// Implements FIPS 203 ByteDecode_12. The output coefficients are in
// [0, 4096) and are NOT reduced mod q.
func fromBytesGeneric(p *poly, buf []byte) {
	for i := 0; i < n/2; i++ {
		p[2*i] = int16(buf[3*i]) | (int16(buf[3*i+1])<<8)&0xfff
		p[2*i+1] = int16(buf[3*i+1]>>4) | int16(buf[3*i+2])<<4
	}
}

// compressTo writes Compress_d(p) to buf, packed d bits per
// coefficient. Requires p unsigned canonical and d in {4, 5, 10, 11};
// buf must be n*d/8 bytes.
func (p *poly) compressTo(buf []byte, d int) {
	polyUBoundCheck(p, q, "compress input")
	switch d {
	case 4:
		var t [8]uint16
		idx := 0
		for i := 0; i < n/8; i++ {
			for j := 0; j < 8; j++ {
				t[j] = scalarCompress(uint16(p[8*i+j]), 4)
			}
			buf[idx] = byte(t[0]) | byte(t[1]<<4)
			buf[idx+1] = byte(t[2]) | byte(t[3]<<4)
			buf[idx+2] = byte(t[4]) | byte(t[5]<<4)
			buf[idx+3] = byte(t[6]) | byte(t[7]<<4)
			idx += 4
		}
	case 5:
		var t [8]uint16
		idx := 0
		for i := 0; i < n/8; i++ {
			for j := 0; j < 8; j++ {
				t[j] = scalarCompress(uint16(p[8*i+j]), 5)
			}
			buf[idx] = byte(t[0]) | byte(t[1]<<5)
			buf[idx+1] = byte(t[1]>>3) | byte(t[2]<<2) | byte(t[3]<<7)
			buf[idx+2] = byte(t[3]>>1) | byte(t[4]<<4)
			buf[idx+3] = byte(t[4]>>4) | byte(t[5]<<1) | byte(t[6]<<6)
			buf[idx+4] = byte(t[6]>>2) | byte(t[7]<<3)
			idx += 5
		}
	case 10:
		var t [4]uint16
		idx := 0
		for i := 0; i < n/4; i++ {
			for j := 0; j < 4; j++ {
				t[j] = scalarCompress(uint16(p[4*i+j]), 10)
			}
			buf[idx] = byte(t[0])
			buf[idx+1] = byte(t[0]>>8) | byte(t[1]<<2)
			buf[idx+2] = byte(t[1]>>6) | byte(t[2]<<4)
			buf[idx+3] = byte(t[2]>>4) | byte(t[3]<<6)
			buf[idx+4] = byte(t[3] >> 2)
			idx += 5
		}
	case 11:
		var t [8]uint16
		idx := 0
		for i := 0; i < n/8; i++ {
			for j := 0; j < 8; j++ {
				t[j] = scalarCompress(uint16(p[8*i+j]), 11)
			}
			buf[idx] = byte(t[0])
			buf[idx+1] = byte(t[0]>>8) | byte(t[1]<<3)
			buf[idx+2] = byte(t[1]>>5) | byte(t[2]<<6)
			buf[idx+3] = byte(t[2] >> 2)
			buf[idx+4] = byte(t[2]>>10) | byte(t[3]<<1)
			buf[idx+5] = byte(t[3]>>7) | byte(t[4]<<4)
			buf[idx+6] = byte(t[4]>>4) | byte(t[5]<<7)
			buf[idx+7] = byte(t[5] >> 1)
			buf[idx+8] = byte(t[5]>>9) | byte(t[6]<<2)
			buf[idx+9] = byte(t[6]>>6) | byte(t[7]<<5)
			buf[idx+10] = byte(t[7] >> 3)
			idx += 11
		}
	default:
		panic("mlkem: unsupported compression width")
	}
}

// decompress sets p to Decompress_d of the packed buf, the approximate
// inverse of compressTo. The output is unsigned canonical. Requires d
// in {4, 5, 10, 11}.
func (p *poly) decompress(buf []byte, d int) {
	switch d {
	case 4:
		for i := 0; i < n/2; i++ {
			p[2*i] = int16(scalarDecompress(uint16(buf[i])&0xf, 4))
			p[2*i+1] = int16(scalarDecompress(uint16(buf[i])>>4, 4))
		}
	case 5:
		var t [8]uint16
		idx := 0
		for i := 0; i < n/8; i++ {
			t[0] = uint16(buf[idx])
			t[1] = uint16(buf[idx])>>5 | uint16(buf[idx+1])<<3
			t[2] = uint16(buf[idx+1]) >> 2
			t[3] = uint16(buf[idx+1])>>7 | uint16(buf[idx+2])<<1
			t[4] = uint16(buf[idx+2])>>4 | uint16(buf[idx+3])<<4
			t[5] = uint16(buf[idx+3]) >> 1
			t[6] = uint16(buf[idx+3])>>6 | uint16(buf[idx+4])<<2
			t[7] = uint16(buf[idx+4]) >> 3
			for j := 0; j < 8; j++ {
				p[8*i+j] = int16(scalarDecompress(t[j]&(1<<5-1), 5))
			}
			idx += 5
		}
	case 10:
		var t [4]uint16
		idx := 0
		for i := 0; i < n/4; i++ {
			t[0] = uint16(buf[idx]) | uint16(buf[idx+1])<<8
			t[1] = uint16(buf[idx+1])>>2 | uint16(buf[idx+2])<<6
			t[2] = uint16(buf[idx+2])>>4 | uint16(buf[idx+3])<<4
			t[3] = uint16(buf[idx+3])>>6 | uint16(buf[idx+4])<<2
			for j := 0; j < 4; j++ {
				p[4*i+j] = int16(scalarDecompress(t[j]&(1<<10-1), 10))
			}
			idx += 5
		}
	case 11:
		var t [8]uint16
		idx := 0
		for i := 0; i < n/8; i++ {
			t[0] = uint16(buf[idx]) | uint16(buf[idx+1])<<8
			t[1] = uint16(buf[idx+1])>>3 | uint16(buf[idx+2])<<5
			t[2] = uint16(buf[idx+2])>>6 | uint16(buf[idx+3])<<2 | uint16(buf[idx+4])<<10
			t[3] = uint16(buf[idx+4])>>1 | uint16(buf[idx+5])<<7
			t[4] = uint16(buf[idx+5])>>4 | uint16(buf[idx+6])<<4
			t[5] = uint16(buf[idx+6])>>7 | uint16(buf[idx+7])<<1 | uint16(buf[idx+8])<<9
			t[6] = uint16(buf[idx+8])>>2 | uint16(buf[idx+9])<<6
			t[7] = uint16(buf[idx+9])>>5 | uint16(buf[idx+10])<<3
			for j := 0; j < 8; j++ {
				p[8*i+j] = int16(scalarDecompress(t[j]&(1<<11-1), 11))
			}
			idx += 11
		}
	default:
		panic("mlkem: unsupported compression width")
	}
	polyUBoundCheck(p, q, "decompress output")
}

// fromMsg sets p to Decompress_1 of the 32-byte message: each message
// bit selects 0 or round(q/2). The selection uses a constant-time move,
// never a branch on the bit. The output is unsigned canonical.
func (p *poly) fromMsg(msg []byte) {
	for i := 0; i < n/8; i++ {
		for j := 0; j < 8; j++ {
			p[8*i+j] = 0
			cmovInt16(&p[8*i+j], halfQ, uint16(msg[i]>>j)&1)
		}
	}
}

// toMsg writes Compress_1(p) to the 32-byte msg, recovering one bit per
// coefficient. Requires p unsigned canonical.
func (p *poly) toMsg(msg []byte) {
	polyUBoundCheck(p, q, "tomsg input")
	for i := 0; i < n/8; i++ {
		msg[i] = 0
		for j := 0; j < 8; j++ {
			bit := scalarCompress1(uint16(p[8*i+j]))
			msg[i] |= byte(bit) << j
		}
	}
}
