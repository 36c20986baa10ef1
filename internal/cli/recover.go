package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MuddySheep/Shamirs-Leak/internal/attemptlog"
	"github.com/MuddySheep/Shamirs-Leak/internal/fileutil"
	"github.com/MuddySheep/Shamirs-Leak/internal/mnemonic"
	"github.com/MuddySheep/Shamirs-Leak/internal/output"
	"github.com/MuddySheep/Shamirs-Leak/internal/pipeline"
	"github.com/MuddySheep/Shamirs-Leak/internal/search"
	"github.com/MuddySheep/Shamirs-Leak/internal/shamir"
	"github.com/MuddySheep/Shamirs-Leak/internal/stats"
	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// recoverCmd hunts for the missing third Shamir share.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover the missing Shamir share and matching wallet seed",
	Long: `recover takes two known Shamir shares (each a share-encoded BIP39
mnemonic) and a target BIP84 extended public key, and searches the weak
PRNG's candidate space for the third share that reconstructs a seed
deriving that zpub.

--share1 and --share2 each accept either the mnemonic phrase directly
or a path to a file containing it.

Example:
  shamirleak recover --share1 shareA.txt --share2 shareB.txt --zpub zpub6...`,
	RunE: runRecover,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	recoverShare1       string
	recoverShare2       string
	recoverZpub         string
	recoverThreads      int
	recoverPRNGReuse    uint64
	recoverPRNGMask     uint8
	recoverIndexCollide float64
	recoverProgress     bool
	recoverMaxDepth     int
	recoverRateLimit    float64
	recoverAttemptLog   string
	recoverAgeRecipient string
	recoverEncryptLog   bool
	recoverOut          string
)

func init() {
	rootCmd.AddCommand(recoverCmd)

	flags := recoverCmd.Flags()
	flags.StringVar(&recoverShare1, "share1", "", "first known share: inline mnemonic or path to a file containing one")
	flags.StringVar(&recoverShare2, "share2", "", "second known share: inline mnemonic or path to a file containing one")
	flags.StringVar(&recoverZpub, "zpub", "", "target BIP84 extended public key (zpub...)")
	flags.IntVar(&recoverThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	flags.Uint64Var(&recoverPRNGReuse, "prng-reuse", 0, "PRNG seed reuse period (0 = use config default)")
	flags.Uint8Var(&recoverPRNGMask, "prng-mask", 0, "PRNG seed mask byte (0 = use config default)")
	flags.Float64Var(&recoverIndexCollide, "index-collision", -1, "probability a known index recurs as the third share's index (-1 = use config default)")
	flags.BoolVar(&recoverProgress, "progress", false, "print progress as candidates are searched (forces single-threaded search)")
	flags.IntVar(&recoverMaxDepth, "max-depth", 0, "candidate payload depth per phase (0 = use config default)")
	flags.Float64Var(&recoverRateLimit, "rate-limit", 0, "maximum candidates evaluated per second (0 = unthrottled)")
	flags.StringVar(&recoverAttemptLog, "attempt-log", "", "path prefix for the attempt log (writes .md and .csv, or a single encrypted file with --age-recipient)")
	flags.StringVar(&recoverAgeRecipient, "age-recipient", "", "age passphrase recipient; when set, the attempt log is encrypted")
	flags.BoolVar(&recoverEncryptLog, "encrypt-log", false, "encrypt the attempt log even when an age recipient isn't set via flag")
	flags.StringVar(&recoverOut, "out", "", "save a successful recovery result (mnemonic, share index, zpub) to this file")

	_ = recoverCmd.MarkFlagRequired("share1")
	_ = recoverCmd.MarkFlagRequired("share2")
	_ = recoverCmd.MarkFlagRequired("zpub")
}

func runRecover(cmd *cobra.Command, _ []string) error {
	cmdCtx := GetCmdContext(cmd)

	share1Phrase, err := loadShareValue(recoverShare1)
	if err != nil {
		return err
	}
	share2Phrase, err := loadShareValue(recoverShare2)
	if err != nil {
		return err
	}

	shareA, err := decodeShare(share1Phrase)
	if err != nil {
		return err
	}
	shareB, err := decodeShare(share2Phrase)
	if err != nil {
		return err
	}

	recoveryCfg := cfg.Recovery
	settings := recoveryCfg.PRNGSettings()
	if recoverPRNGReuse != 0 {
		settings.ReusePeriod = recoverPRNGReuse
	}
	if recoverPRNGMask != 0 {
		settings.Mask = recoverPRNGMask
	}

	maxDepth := recoveryCfg.MaxDepth
	if recoverMaxDepth > 0 {
		maxDepth = recoverMaxDepth
	}

	collisionProb := recoveryCfg.IndexCollisionProb
	if recoverIndexCollide >= 0 {
		collisionProb = recoverIndexCollide
	}

	rate := recoveryCfg.RatePerSecond
	if recoverRateLimit > 0 {
		rate = recoverRateLimit
	}

	threads := recoveryCfg.Threads
	if recoverThreads > 0 {
		threads = recoverThreads
	}

	attemptLogPath := recoveryCfg.AttemptLogPath
	if recoverAttemptLog != "" {
		attemptLogPath = recoverAttemptLog
	}
	ageRecipient := recoveryCfg.AgeRecipient
	if recoverAgeRecipient != "" {
		ageRecipient = recoverAgeRecipient
	}
	encryptLog := recoveryCfg.EncryptAttemptLog || recoverEncryptLog

	sink, closeSink, err := buildAttemptLogSink(attemptLogPath, ageRecipient, encryptLog)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeSink(); closeErr != nil && cmdCtx != nil && cmdCtx.Log != nil {
			cmdCtx.Log.Error("closing attempt log: %v", closeErr)
		}
	}()

	st := stats.New()
	driverPipeline := pipeline.New()
	driver := search.New(driverPipeline.Encoder, driverPipeline.Deriver, st, sink)

	searchCfg := search.Config{
		MaxDepth:           maxDepth,
		Settings:           settings,
		IndexCollisionProb: collisionProb,
		Progress:           recoverProgress || recoveryCfg.Progress || cfg.Output.Verbose,
		Workers:            threads,
		RatePerSecond:      rate,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := driver.Run(ctx, shareA, shareB, recoverZpub, searchCfg)
	if err != nil {
		return err
	}

	if result.Found && recoverOut != "" {
		if err := saveRecoverResult(recoverOut, result); err != nil {
			return err
		}
	}

	return printRecoverResult(cmd.OutOrStdout(), result, st)
}

// saveRecoverResult persists a successful recovery to disk atomically,
// so a crash or a racing second invocation never leaves a torn file.
func saveRecoverResult(path string, result search.Result) error {
	body := fmt.Sprintf("share_index: %d\nmnemonic: %s\nzpub: %s\n",
		result.Share.Index, result.Mnemonic, result.Zpub)
	if err := fileutil.WriteAtomic(path, []byte(body), 0o600); err != nil {
		return recoveryerr.Wrap(err, "writing recovery result to %s", path)
	}
	return nil
}

// loadShareValue resolves a --share1/--share2 argument: if it names an
// existing regular file, its trimmed contents are used as the share
// phrase; otherwise the argument itself is treated as the inline phrase.
func loadShareValue(value string) (string, error) {
	if value == "" {
		return "", recoveryerr.WithSuggestion(recoveryerr.ErrInvalidInput, "share value must not be empty")
	}

	info, statErr := os.Stat(value)
	if statErr != nil || info.IsDir() {
		return strings.TrimSpace(value), nil
	}

	data, readErr := os.ReadFile(value) //nolint:gosec // G304: path is operator-supplied, not attacker input
	if readErr != nil {
		return "", recoveryerr.Wrap(recoveryerr.ErrShareFileNotFound, "reading %s", value)
	}
	return strings.TrimSpace(string(data)), nil
}

func decodeShare(phrase string) (shamir.Share, error) {
	index, payload, err := mnemonic.DecodeShare(phrase)
	if err != nil {
		return shamir.Share{}, err
	}
	return shamir.Share{Index: index, Payload: payload}, nil
}

func buildAttemptLogSink(path, recipient string, encryptLog bool) (attemptlog.Sink, func() error, error) {
	if path == "" {
		return attemptlog.NopSink{}, func() error { return nil }, nil
	}

	encrypt := encryptLog || recipient != ""

	if encrypt {
		if recipient == "" {
			return nil, nil, recoveryerr.WithSuggestion(recoveryerr.ErrInvalidInput, "--age-recipient is required with --encrypt-log")
		}
		sink := attemptlog.NewEncryptedSink(path+".md.age", recipient)
		return sink, sink.Close, nil
	}

	sink, err := attemptlog.NewFileSink(path+".md", path+".csv")
	if err != nil {
		return nil, nil, recoveryerr.Wrap(err, "opening attempt log at %s", path)
	}
	return sink, sink.Close, nil
}

func printRecoverResult(w io.Writer, result search.Result, st *stats.Stats) error {
	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}

	if format == output.FormatJSON {
		return printRecoverResultJSON(w, result, st)
	}

	if result.Found {
		fmt.Fprintf(w, "[!] SUCCESS: %s\n", result.Mnemonic)
		fmt.Fprintf(w, "zpub: %s\n", result.Zpub)
	} else {
		fmt.Fprintln(w, "[!] No valid mnemonic found")
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, st.Report())
	return nil
}

func printRecoverResultJSON(w io.Writer, result search.Result, st *stats.Stats) error {
	best, bestPrefix := st.Best()
	type jsonResult struct {
		Found             bool    `json:"found"`
		ShareIndex        *int    `json:"share_index,omitempty"`
		Mnemonic          string  `json:"mnemonic,omitempty"`
		Zpub              string  `json:"zpub,omitempty"`
		TotalCandidates   uint64  `json:"total_candidates"`
		BestScore         float64 `json:"best_score"`
		BestPrefixZpub    string  `json:"best_prefix_zpub"`
		CandidatesPerSec  float64 `json:"candidates_per_sec"`
	}

	out := jsonResult{
		Found:            result.Found,
		Mnemonic:         result.Mnemonic,
		Zpub:             result.Zpub,
		TotalCandidates:  st.TotalCandidates(),
		BestScore:        best,
		BestPrefixZpub:   bestPrefix,
		CandidatesPerSec: st.CandidatesPerSecond(),
	}
	if result.Found {
		idx := int(result.Share.Index)
		out.ShareIndex = &idx
	}

	return formatter.Print(out)
}
