// Package gf256 implements arithmetic over GF(2^8), the Rijndael finite
// field used by AES and by this tool's Shamir reconstruction.
package gf256

import (
	"sync"

	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

const (
	// primitivePolynomial is x^8 + x^4 + x^3 + x + 1 (0x11b), the same
	// reduction polynomial AES uses.
	primitivePolynomial = 0x11b

	// fieldSize is the number of elements in the field (2^8).
	fieldSize = 256

	// generator is the multiplicative generator used to build the log/exp
	// tables. 3 generates the full multiplicative group under 0x11b.
	generator = 3
)

var (
	// expTable is doubled to 2*(fieldSize-1) entries so Mul and Div can
	// add/subtract two table indices in [0, 254] and index straight in,
	// without a modulo on every call. The driver calls Mul on the order
	// of millions of times per run, so this is not a cosmetic choice.
	//
	//nolint:gochecknoglobals // precomputed table, written once under tablesInit
	expTable [2 * (fieldSize - 1)]byte

	//nolint:gochecknoglobals // precomputed table, written once under tablesInit
	logTable [fieldSize]byte

	//nolint:gochecknoglobals // guards one-time table construction
	tablesInit sync.Once
)

func initTables() {
	tablesInit.Do(func() {
		var x uint16 = 1
		for i := 0; i < fieldSize-1; i++ {
			expTable[i] = byte(x)
			logTable[x] = byte(i)

			// Multiply by the generator (3 = x+1): (x<<1) ^ x, then
			// reduce modulo the primitive polynomial if it overflowed.
			x = (x << 1) ^ x
			if x >= fieldSize {
				x ^= primitivePolynomial
			}
		}

		// Mirror the table past index 254 so Mul/Div never need a
		// modulo: any sum or difference of two indices in [0, 254]
		// lands in [0, 508], which this table covers.
		for i := fieldSize - 1; i < len(expTable); i++ {
			expTable[i] = expTable[i-(fieldSize-1)]
		}
	})
}

// Add returns a + b in GF(2^8). Addition and subtraction are both XOR.
func Add(a, b byte) byte { return a ^ b }

// Sub returns a - b in GF(2^8). Identical to Add.
func Sub(a, b byte) byte { return a ^ b }

// Mul returns a * b in GF(2^8) using the log/exp tables.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	initTables()
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Div returns a / b in GF(2^8). Unlike the general-purpose reference this
// was modeled on, division by zero returns an error instead of panicking:
// a batch search evaluating millions of candidate shares cannot afford to
// crash the worker pool on a single malformed input.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, recoveryerr.New("GF256_DIV_BY_ZERO", "division by zero in GF(2^8)")
	}
	if a == 0 {
		return 0, nil
	}
	initTables()
	diff := int(logTable[a]) - int(logTable[b])
	if diff < 0 {
		diff += fieldSize - 1
	}
	return expTable[diff], nil
}

// Pow returns base^exp in GF(2^8).
func Pow(base byte, exp int) byte {
	if exp == 0 {
		return 1
	}
	if base == 0 {
		return 0
	}
	initTables()
	e := (int(logTable[base]) * exp) % (fieldSize - 1)
	if e < 0 {
		e += fieldSize - 1
	}
	return expTable[e]
}
