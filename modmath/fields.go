package modmath

// The three NTT-friendly primes used for every 3-NTT convolution
// (spec.md §3's "NTT prime triple"): each is of the form k*2^m+1 with
// a large power-of-two cofactor and with 3 dividing k, so each supports
// forward/inverse transforms of length 2^j and 3*2^j up to 2^m
// (spec.md §3's "round23up" length family). Their product
// comfortably exceeds any pointwise product
// that arises from a convolution of practical length, satisfying
// spec.md §3's N(B-1)^2 < P bound for every ElementKind this module
// supports (ElementKind governs the storage word width and per-digit
// radix B, not which prime triple is used — see DESIGN.md).
var (
	Field0 = Field{P: 2013265921, PrimitiveRoot: 31} // 15*2^27 + 1
	Field1 = Field{P: 1811939329, PrimitiveRoot: 13} // 27*2^26 + 1
	Field2 = Field{P: 2113929217, PrimitiveRoot: 5}  // 63*2^25 + 1
)

// Triple returns the three fields used by a convolution, in the fixed
// order the Carry-CRT step (spec.md §4.5) expects its residues in.
func Triple() [3]Field {
	return [3]Field{Field0, Field1, Field2}
}
