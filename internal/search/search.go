// Package search implements the two-phase recovery driver: given two
// known Shamir shares and a target extended public key, it hunts for
// the third share whose reconstructed entropy derives a matching zpub.
// Phase 1 tries a heuristically ranked subset of the candidate space;
// Phase 2 falls back to exhaustive enumeration. Both phases split their
// outer loop across a manual worker pool — job channel, results
// channel, sync.WaitGroup — with a context used as the first-match-wins
// cancellation flag.
package search

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"golang.org/x/time/rate"

	"github.com/MuddySheep/Shamirs-Leak/internal/attemptlog"
	"github.com/MuddySheep/Shamirs-Leak/internal/prng"
	"github.com/MuddySheep/Shamirs-Leak/internal/ranker"
	"github.com/MuddySheep/Shamirs-Leak/internal/shamir"
	"github.com/MuddySheep/Shamirs-Leak/internal/stats"
	"github.com/MuddySheep/Shamirs-Leak/internal/zpubdiff"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// MnemonicEncoder turns reconstructed entropy into its 12-word phrase.
// The driver depends only on this narrow interface, never on a
// concrete BIP39 library type.
type MnemonicEncoder interface {
	Encode(entropy []byte) (string, error)
}

// ZpubDeriver derives the BIP84 extended public key for a mnemonic phrase.
type ZpubDeriver interface {
	Zpub(mnemonicPhrase string) (string, error)
}

// Config bounds and tunes one search call.
type Config struct {
	MaxDepth           int
	Settings           prng.Settings
	IndexCollisionProb float64
	Progress           bool
	Workers            int
	RatePerSecond      float64 // 0 disables throttling
}

// Result is the outcome of a completed search call.
type Result struct {
	Found    bool
	Share    shamir.Share
	Mnemonic string
	Zpub     string
}

// Driver runs the recovery search against a pair of collaborators.
type Driver struct {
	Encoder MnemonicEncoder
	Deriver ZpubDeriver
	Stats   *stats.Stats
	Log     attemptlog.Sink
}

// New builds a Driver. A nil stats falls back to a fresh stats.Stats; a
// nil log falls back to attemptlog.NopSink.
func New(encoder MnemonicEncoder, deriver ZpubDeriver, st *stats.Stats, log attemptlog.Sink) *Driver {
	if st == nil {
		st = stats.New()
	}
	if log == nil {
		log = attemptlog.NopSink{}
	}
	return &Driver{Encoder: encoder, Deriver: deriver, Stats: st, Log: log}
}

// Run executes the search contract: Phase 1 heuristic pass, then Phase
// 2 exhaustive pass if Phase 1 found nothing. targetZpub == "" never
// matches (the caller is validating shares without a known target).
func (d *Driver) Run(ctx context.Context, shareA, shareB shamir.Share, targetZpub string, cfg Config) (Result, error) {
	if err := validateInputs(shareA, shareB, cfg); err != nil {
		return Result{}, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Progress {
		workers = 1
	}
	d.Stats.SetWorkerCount(workers)

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	indices, err := rankedIndices(shareA.Index, shareB.Index, cfg.IndexCollisionProb)
	if err != nil {
		return Result{}, err
	}

	// bestSimilarity tracks the highest similarity seen across both
	// phases for --progress's deterministic best-so-far line. Safe to
	// share unsynchronized: cfg.Progress forces workers down to 1.
	bestSimilarity := -1.0

	heuristicPayloads := ranker.RankPayloads(shareA.Payload, shareB.Payload, cfg.MaxDepth, cfg.Settings, ranker.DefaultQueueSize)
	phase1Producer := func(ctx context.Context, jobs chan<- []byte) {
		defer close(jobs)
		for _, c := range heuristicPayloads {
			select {
			case <-ctx.Done():
				return
			case jobs <- c.Payload:
			}
		}
	}

	result, matched := d.runPhase(ctx, workers, limiter, phase1Producer, indices, shareA, shareB, targetZpub, cfg.Progress, &bestSimilarity)
	if matched {
		return result, nil
	}

	phase2Producer := func(ctx context.Context, jobs chan<- []byte) {
		defer close(jobs)
		for n := 0; n < cfg.MaxDepth; n++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- enumeratedPayload(n):
			}
		}
	}

	result, matched = d.runPhase(ctx, workers, limiter, phase2Producer, indices, shareA, shareB, targetZpub, cfg.Progress, &bestSimilarity)
	if matched {
		return result, nil
	}

	return Result{Found: false}, nil
}

// runPhase drives one phase's worker pool to completion, or until a
// worker reports a match, whichever comes first.
func (d *Driver) runPhase(
	ctx context.Context,
	workers int,
	limiter *rate.Limiter,
	produce func(ctx context.Context, jobs chan<- []byte),
	indices []byte,
	shareA, shareB shamir.Share,
	targetZpub string,
	progress bool,
	bestSimilarity *float64,
) (Result, bool) {
	phaseCtx, cancelPhase := context.WithCancel(ctx)
	defer cancelPhase()

	jobs := make(chan []byte, workers)
	results := make(chan Result, workers)

	go produce(phaseCtx, jobs)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go d.worker(phaseCtx, jobs, results, indices, shareA, shareB, targetZpub, limiter, progress, bestSimilarity, &wg)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var out Result
	matched := false
	for r := range results {
		if r.Found && !matched {
			matched = true
			out = r
			cancelPhase()
		}
	}
	return out, matched
}

// worker consumes payload jobs and tries every ranked index against
// each, sequentially, per the contract's inner-loop ordering.
func (d *Driver) worker(
	ctx context.Context,
	jobs <-chan []byte,
	results chan<- Result,
	indices []byte,
	shareA, shareB shamir.Share,
	targetZpub string,
	limiter *rate.Limiter,
	progress bool,
	bestSimilarity *float64,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for payload := range jobs {
		if ctx.Err() != nil {
			continue
		}

		for _, idx := range indices {
			if ctx.Err() != nil {
				break
			}

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					break
				}
			}

			found, ok := d.tryCandidate(shareA, shareB, idx, payload, targetZpub, progress, bestSimilarity)
			if ok {
				results <- found
				return
			}
		}
	}
}

// tryCandidate builds share_c = [idx] ++ payload, reconstructs, derives
// a candidate zpub, and reports whether it matches the target. External
// derivation failures are treated as an empty candidate: local, non-fatal.
func (d *Driver) tryCandidate(
	shareA, shareB shamir.Share,
	idx byte,
	payload []byte,
	targetZpub string,
	progress bool,
	bestSimilarity *float64,
) (Result, bool) {
	d.Stats.IncCandidates()

	shareC := shamir.Share{Index: idx, Payload: payload}
	secret, err := shamir.Reconstruct(shareA, shareB, shareC)
	if err != nil || len(secret) != shamir.PayloadLen {
		return Result{}, false
	}

	phrase, err := d.Encoder.Encode(secret)
	if err != nil {
		return Result{}, false
	}

	candidateZpub, err := d.Deriver.Zpub(phrase)
	if err != nil {
		return Result{}, false
	}

	metrics := zpubdiff.Diff(candidateZpub, targetZpub)
	d.Stats.UpdateBest(float64(metrics.PrefixLen), candidateZpub[:min(metrics.PrefixLen, len(candidateZpub))])

	if progress && metrics.Similarity > *bestSimilarity {
		*bestSimilarity = metrics.Similarity
		fmt.Fprintf(os.Stdout, "[Progress] best similarity %.4f\n", *bestSimilarity)
	}

	if targetZpub != "" && candidateZpub == targetZpub {
		d.Stats.IncMatches()
		return Result{Found: true, Share: shareC, Mnemonic: phrase, Zpub: candidateZpub}, true
	}

	_ = d.Log.Record(candidateZpub, metrics)
	return Result{}, false
}

// rankedIndices returns the 1..=255 index space in the ranker's
// descending-weight order, skipping the two known indices when the
// collision probability is exactly zero.
func rankedIndices(a, b byte, collisionProb float64) ([]byte, error) {
	candidates, err := ranker.RankIndices(a, b, collisionProb)
	if err != nil {
		return nil, err
	}

	skip := collisionProb == 0
	out := make([]byte, 0, len(candidates))
	for _, c := range candidates {
		if skip && (c.Index == a || c.Index == b) {
			continue
		}
		out = append(out, c.Index)
	}
	return out, nil
}

// enumeratedPayload mirrors ranker's little-endian base-256 expansion
// used for Phase 2's natural (unranked) enumeration order.
func enumeratedPayload(n int) []byte {
	payload := make([]byte, shamir.PayloadLen)
	for i := 0; n > 0 && i < shamir.PayloadLen; i++ {
		payload[i] = byte(n & 0xFF)
		n >>= 8
	}
	return payload
}

// validateInputs enforces the driver's fatal pre-check invariants.
func validateInputs(shareA, shareB shamir.Share, cfg Config) error {
	if len(shareA.Payload) != len(shareB.Payload) {
		return recoveryerr.WithDetails(recoveryerr.ErrShareLengthMismatch, map[string]string{
			"a": itoa(len(shareA.Payload)),
			"b": itoa(len(shareB.Payload)),
		})
	}
	if shareA.Index == 0 || shareB.Index == 0 {
		return recoveryerr.ErrShareIndexZero
	}
	if shareA.Index == shareB.Index {
		return recoveryerr.ErrDuplicateShareIndex
	}
	if cfg.IndexCollisionProb < 0 || cfg.IndexCollisionProb > 1 {
		return recoveryerr.ErrInvalidProbability
	}
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}
