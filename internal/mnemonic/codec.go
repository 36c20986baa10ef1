// Package mnemonic converts between 12-word BIP39-style phrases and their
// underlying 132-bit payload, in two modes: the standard BIP39 checksum
// (used for the recovered seed) and a share-encoded checksum that embeds
// a Shamir share index 1..=15 in place of the SHA-256 checksum bits (used
// to serialize individual shares as human-transcribable word lists).
//
// The two modes have separate entry points: DecodeShare never checks the
// SHA-256 checksum and Decode never reads the last four bits as a share
// index, so a phrase is only ever interpreted under the mode its caller
// asked for. Cross-validating them would make the decoder accept garbage
// under either mode.
package mnemonic

import (
	"strings"

	"github.com/tyler-smith/go-bip39"

	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// PayloadLen is the fixed entropy length in bytes (128 bits).
const PayloadLen = 16

// WordCount is the fixed number of words a mnemonic of this scheme carries.
const WordCount = 12

// wordlist is the shared BIP39 English wordlist both codecs index into.
var wordlist = bip39.GetWordList()

// wordIndex maps a lowercase word to its position in wordlist, built once
// to make DecodeShare and IsValidWord linear-search-free on repeated calls.
var wordIndex = buildWordIndex()

func buildWordIndex() map[string]int {
	m := make(map[string]int, len(wordlist))
	for i, w := range wordlist {
		m[w] = i
	}
	return m
}

// EncodeShare builds a 12-word share-encoded mnemonic from a share index
// (1..=15) and a 16-byte payload: the 132-bit string is the payload bits
// followed by the 4-bit index, chunked into twelve 11-bit word indices.
func EncodeShare(index byte, payload []byte) (string, error) {
	if index < 1 || index > 15 {
		return "", recoveryerr.ErrShareIndexOutOfRange
	}
	if len(payload) != PayloadLen {
		return "", recoveryerr.WithDetails(recoveryerr.ErrShareLengthMismatch, map[string]string{
			"want": "16",
			"got":  itoa(len(payload)),
		})
	}

	bits := make([]byte, 0, 132)
	bits = appendBits(bits, payload, 128)
	bits = appendBits(bits, []byte{index}, 4)

	return wordsFromBits(bits)
}

// DecodeShare parses a share-encoded mnemonic back into its index and
// 16-byte payload.
func DecodeShare(phrase string) (index byte, payload []byte, err error) {
	words := strings.Fields(Normalize(phrase))
	if len(words) != WordCount {
		return 0, nil, recoveryerr.ErrWordCountMismatch
	}

	bits, err := bitsFromWords(words)
	if err != nil {
		return 0, nil, err
	}

	payload = bitsToBytes(bits[:128])
	idx := byte(bitsToInt(bits[128:132]))

	if idx < 1 || idx > 15 {
		return 0, nil, recoveryerr.ErrShareIndexOutOfRange
	}

	return idx, payload, nil
}

// Encode builds a standard BIP39 mnemonic from 16 bytes of entropy, using
// the high 4 bits of SHA-256(entropy) as the checksum.
func Encode(entropy []byte) (string, error) {
	if len(entropy) != PayloadLen {
		return "", recoveryerr.WithDetails(recoveryerr.ErrShareLengthMismatch, map[string]string{
			"want": "16",
			"got":  itoa(len(entropy)),
		})
	}
	return bip39.NewMnemonic(entropy)
}

// Decode validates a standard BIP39 mnemonic and returns its entropy. On
// checksum mismatch it brute-forces the last word against all 2048
// wordlist entries and returns the first substitution whose checksum
// verifies, so a single hand-transcription error doesn't sink an
// otherwise-correct phrase.
func Decode(phrase string) ([]byte, error) {
	normalized := Normalize(phrase)
	words := strings.Fields(normalized)
	if len(words) != WordCount {
		return nil, recoveryerr.ErrWordCountMismatch
	}

	if entropy, err := bip39.MnemonicToByteArray(normalized, true); err == nil {
		return entropy, nil
	}

	for _, w := range wordlist {
		candidate := make([]string, len(words))
		copy(candidate, words)
		candidate[len(candidate)-1] = w

		entropy, err := bip39.MnemonicToByteArray(strings.Join(candidate, " "), true)
		if err == nil {
			return entropy, nil
		}
	}

	return nil, recoveryerr.ErrChecksumUncorrectable
}

func wordsFromBits(bits []byte) (string, error) {
	if len(bits) != 132 {
		return "", recoveryerr.New("INVALID_BIT_LENGTH", "expected 132 bits")
	}

	words := make([]string, WordCount)
	for i := 0; i < WordCount; i++ {
		chunk := bits[i*11 : i*11+11]
		idx := bitsToInt(chunk)
		words[i] = wordlist[idx]
	}
	return strings.Join(words, " "), nil
}

func bitsFromWords(words []string) ([]byte, error) {
	bits := make([]byte, 0, 132)
	for _, w := range words {
		idx, ok := wordIndex[strings.ToLower(w)]
		if !ok {
			return nil, recoveryerr.WithDetails(recoveryerr.ErrUnknownWord, map[string]string{"word": w})
		}
		bits = appendBits(bits, []byte{byte(idx >> 8), byte(idx)}, 11)
	}
	return bits, nil
}

// appendBits appends the low n bits of the big-endian byte slice v to
// bits, most significant bit first.
func appendBits(bits []byte, v []byte, n int) []byte {
	total := len(v) * 8
	start := total - n
	for i := start; i < total; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		bit := (v[byteIdx] >> uint(bitIdx)) & 1
		bits = append(bits, bit)
	}
	return bits
}

func bitsToInt(bits []byte) int {
	v := 0
	for _, b := range bits {
		v = (v << 1) | int(b)
	}
	return v
}

func bitsToBytes(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b == 1 {
			byteIdx := i / 8
			bitIdx := 7 - (i % 8)
			out[byteIdx] |= 1 << uint(bitIdx)
		}
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
