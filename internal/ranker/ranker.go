// Package ranker orders the candidate search space — both payload bytes
// and share indices — by heuristic plausibility instead of leaving the
// driver to enumerate blindly. It scores payloads against a
// Laplace-smoothed byte-frequency model built from the two known shares,
// a weak-PRNG reference, and a repetition penalty, and scores indices by
// a configurable collision probability against the two known indices.
package ranker

import (
	"sort"

	"github.com/MuddySheep/Shamirs-Leak/internal/prng"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// PayloadLen is the fixed candidate length in bytes.
const PayloadLen = 16

// DefaultQueueSize bounds how many ranked payload candidates Phase 1
// carries forward.
const DefaultQueueSize = 256

// PayloadCandidate is one scored, ordered candidate payload.
type PayloadCandidate struct {
	Payload []byte
	Score   float64
}

// byteFrequencyModel is a Laplace-smoothed frequency table built from
// the observed bytes of the two known payloads: count[b] = 1 + observed.
type byteFrequencyModel [256]float64

func buildFrequencyModel(payloads ...[]byte) byteFrequencyModel {
	var counts [256]float64
	for i := range counts {
		counts[i] = 1
	}
	for _, p := range payloads {
		for _, b := range p {
			counts[b]++
		}
	}

	var total float64
	for _, c := range counts {
		total += c
	}

	var model byteFrequencyModel
	for i, c := range counts {
		model[i] = c / total
	}
	return model
}

func distinctCount(b []byte) int {
	seen := make(map[byte]bool, len(b))
	for _, v := range b {
		seen[v] = true
	}
	return len(seen)
}

// scorePayload implements the formula from the heuristic ranker's
// contract: sum of byte-frequency scores, plus a PRNG-agreement bonus,
// minus a repetition penalty.
func scorePayload(payload []byte, model byteFrequencyModel, prngRef []byte) float64 {
	var freqSum float64
	for _, b := range payload {
		freqSum += model[b]
	}

	var agree int
	for i := 0; i < len(payload) && i < len(prngRef); i++ {
		if payload[i] == prngRef[i] {
			agree++
		}
	}

	penalty := 0.01 * float64(len(payload)-distinctCount(payload))

	return freqSum + 0.1*float64(agree) - penalty
}

// payloadFromIndex encodes n as a little-endian base-256 integer padded
// to PayloadLen bytes, the same enumeration Phase 2's exhaustive pass
// uses directly without ranking.
func payloadFromIndex(n int) []byte {
	payload := make([]byte, PayloadLen)
	for i := 0; n > 0 && i < PayloadLen; i++ {
		payload[i] = byte(n & 0xFF)
		n >>= 8
	}
	return payload
}

// RankPayloads builds up to maxDepth little-endian base-256 candidates,
// scores each against the frequency model derived from knownA/knownB and
// a PRNG reference, sorts descending with stable enumeration-order
// tie-breaking, and truncates to queueSize (DefaultQueueSize if <= 0).
func RankPayloads(knownA, knownB []byte, maxDepth int, settings prng.Settings, queueSize int) []PayloadCandidate {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	model := buildFrequencyModel(knownA, knownB)
	prngRef := prng.Generate(PayloadLen, settings)

	candidates := make([]PayloadCandidate, maxDepth)
	for n := 0; n < maxDepth; n++ {
		payload := payloadFromIndex(n)
		candidates[n] = PayloadCandidate{
			Payload: payload,
			Score:   scorePayload(payload, model, prngRef),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > queueSize {
		candidates = candidates[:queueSize]
	}
	return candidates
}

// IndexCandidate is one scored, ordered candidate share index.
type IndexCandidate struct {
	Index  byte
	Weight float64
}

// RankIndices assigns weight p/2 to each of the two known indices and
// (1-p)/253 to every other index in 1..=255, then sorts descending.
// Callers must separately skip {a,b} when p == 0, per the driver's
// collision-avoidance contract — this function still returns them with
// zero weight so the ranking itself stays total over 1..=255.
func RankIndices(a, b byte, collisionProb float64) ([]IndexCandidate, error) {
	if collisionProb < 0 || collisionProb > 1 {
		return nil, recoveryerr.ErrInvalidProbability
	}

	known := map[byte]bool{a: true, b: true}
	otherWeight := (1 - collisionProb) / 253

	candidates := make([]IndexCandidate, 0, 255)
	for idx := 1; idx <= 255; idx++ {
		candIdx := byte(idx)
		weight := otherWeight
		if known[candIdx] {
			weight = collisionProb / 2
		}
		candidates = append(candidates, IndexCandidate{Index: candIdx, Weight: weight})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})

	return candidates, nil
}
