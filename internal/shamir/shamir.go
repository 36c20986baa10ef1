// Package shamir reconstructs a secret from exactly three Shamir shares
// over GF(2^8). The scheme this tool recovers from is fixed at threshold
// 3 with a 16-byte payload and indices restricted to 1..=255 (only
// 1..=15 are ever valid for a share-encoded mnemonic, but reconstruction
// itself only requires non-zero, distinct indices) — there is no Split
// half, since this tool only ever reconstructs a missing share, never
// mints new ones.
package shamir

import (
	"github.com/MuddySheep/Shamirs-Leak/internal/gf256"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// PayloadLen is the fixed secret length this scheme carries per share.
const PayloadLen = 16

// Share is one (index, payload) pair of the secret-sharing scheme.
type Share struct {
	Index   byte
	Payload []byte
}

// Reconstruct recovers the secret from exactly three shares via Lagrange
// interpolation at x=0, one GF(256) byte position at a time.
func Reconstruct(a, b, c Share) ([]byte, error) {
	shares := [3]Share{a, b, c}

	for _, s := range shares {
		if len(s.Payload) < 1 {
			return nil, recoveryerr.ErrShareTooShort
		}
		if s.Index == 0 {
			return nil, recoveryerr.ErrShareIndexZero
		}
	}

	if len(shares[0].Payload) != len(shares[1].Payload) || len(shares[0].Payload) != len(shares[2].Payload) {
		return nil, recoveryerr.WithDetails(recoveryerr.ErrShareLengthMismatch, map[string]string{
			"a": itoa(len(shares[0].Payload)),
			"b": itoa(len(shares[1].Payload)),
			"c": itoa(len(shares[2].Payload)),
		})
	}

	if shares[0].Index == shares[1].Index ||
		shares[0].Index == shares[2].Index ||
		shares[1].Index == shares[2].Index {
		return nil, recoveryerr.ErrDuplicateShareIndex
	}

	weights, err := lagrangeWeights(shares)
	if err != nil {
		return nil, err
	}

	secret := make([]byte, len(shares[0].Payload))
	for i := range secret {
		var val byte
		for j, s := range shares {
			val = gf256.Add(val, gf256.Mul(s.Payload[i], weights[j]))
		}
		secret[i] = val
	}

	return secret, nil
}

// lagrangeWeights precomputes the Lagrange basis weight for each share at
// x=0: weight_i = product over j != i of x_j / (x_j - x_i).
func lagrangeWeights(shares [3]Share) ([3]byte, error) {
	var weights [3]byte

	for i := range shares {
		weight := byte(1)
		for j := range shares {
			if i == j {
				continue
			}
			top := shares[j].Index
			bottom := gf256.Sub(shares[j].Index, shares[i].Index)

			factor, err := gf256.Div(top, bottom)
			if err != nil {
				// Unreachable given the duplicate-index check above,
				// but propagate rather than panic.
				return weights, recoveryerr.Wrap(err, "computing lagrange weight for share index %d", shares[i].Index)
			}
			weight = gf256.Mul(weight, factor)
		}
		weights[i] = weight
	}

	return weights, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
