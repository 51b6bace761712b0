// orderaudit - ordering SDK command line tool
// 1. Replays interleaving vector files and checks the outputs
// 2. Recomputes the fair interleaving for a pool file and seed
// 3. Runs an end-to-end audit demo against the in-memory chain
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/colorfulnotion/fairdex/client"
	"github.com/colorfulnotion/fairdex/common"
	log "github.com/colorfulnotion/fairdex/log"
	"github.com/colorfulnotion/fairdex/sdkerrors"
	"github.com/colorfulnotion/fairdex/shuffle"
	"github.com/colorfulnotion/fairdex/xoshiro"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type vectorCase struct {
	Name   string                         `json:"name"`
	Seed   string                         `json:"seed"`
	Items  []shuffle.Item[string, uint32] `json:"items"`
	Output []uint32                       `json:"output"`
	Draws  int                            `json:"draws"`
}

type countingSource struct {
	src   shuffle.DrawSource
	draws int
}

func (c *countingSource) NextInRange(bound uint32) uint32 {
	c.draws++
	return c.src.NextInRange(bound)
}

func newSource(seedHex string) (*xoshiro.Source, error) {
	return xoshiro.New(common.Hex2Bytes(seedHex))
}

func runVectors(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cases []vectorCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	failed := 0
	for _, tc := range cases {
		src, err := newSource(tc.Seed)
		if err != nil {
			return fmt.Errorf("case %s: %w", tc.Name, err)
		}
		counter := &countingSource{src: src}
		merged := shuffle.Interleave(tc.Items, counter)
		ok := len(merged) == len(tc.Output) && counter.draws == tc.Draws
		for i := 0; ok && i < len(merged); i++ {
			ok = merged[i] == tc.Output[i]
		}
		if ok {
			fmt.Printf("PASS %-36s items=%d draws=%d\n", tc.Name, len(tc.Items), counter.draws)
		} else {
			failed++
			fmt.Printf("FAIL %-36s expected=%v (%d draws) got=%v (%d draws)\n", tc.Name, tc.Output, tc.Draws, merged, counter.draws)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(cases))
	}
	fmt.Printf("All %d cases passed\n", len(cases))
	return nil
}

func runInterleave(path string, seedHex string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var items []shuffle.Item[string, json.RawMessage]
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	src, err := newSource(seedHex)
	if err != nil {
		return err
	}

	type slot struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	keyed := make([]shuffle.Item[string, slot], len(items))
	for i, item := range items {
		keyed[i] = shuffle.Item[string, slot]{Key: item.Key, Value: slot{Key: item.Key, Value: item.Value}}
	}
	merged := shuffle.Interleave(keyed, src)

	out, err := json.MarshalIndent(merged, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runDemo(senders int, perSender int, entropyTag string) error {
	ctx := context.Background()
	chain := client.NewMockChain()

	for nonce := uint64(0); nonce < uint64(perSender); nonce++ {
		for s := 0; s < senders; s++ {
			ext := client.SignedExtrinsic{
				Signer: common.Blake2Hash([]byte(fmt.Sprintf("sender-%d", s))),
				Nonce:  nonce,
				Method: "swap",
			}
			if _, err := chain.SubmitExtrinsic(ctx, ext); err != nil {
				return err
			}
		}
	}

	pool, err := chain.PendingExtrinsics(ctx)
	if err != nil {
		return err
	}
	blk, err := chain.BuildBlock(common.Blake2Hash([]byte(entropyTag)))
	if err != nil {
		return err
	}

	report, err := client.NewAuditor(chain).AuditBlock(ctx, blk.Number, pool)
	if err != nil {
		return err
	}
	fmt.Printf("block %d  hash=%s  seed=%s  extrinsics=%d  matched=%v\n",
		report.BlockNumber, report.BlockHash.String_short(), report.Seed.String_short(), len(report.Expected), report.Matched)
	for i, ext := range blk.Extrinsics {
		fmt.Printf("  %2d  signer=%s nonce=%d\n", i, ext.Signer.String_short(), ext.Nonce)
	}
	return nil
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "orderaudit",
		Short: "Fair ordering audit tool",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		logLevel string
		debug    string
		seedHex  string
	)
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&debug, "debug", "", "comma-separated module logs to enable")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.InitLogger(logLevel)
		log.EnableModules(debug)
	}

	var vectorsCmd = &cobra.Command{
		Use:   "vectors <file.json>",
		Short: "Replay an interleaving vector file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVectors(args[0])
		},
	}

	var interleaveCmd = &cobra.Command{
		Use:   "interleave <items.json>",
		Short: "Recompute the fair interleaving of a pool file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterleave(args[0], seedHex)
		},
	}
	interleaveCmd.Flags().StringVar(&seedHex, "seed", "", "32-byte seed in hex")
	interleaveCmd.MarkFlagRequired("seed")

	var (
		senders    int
		perSender  int
		entropyTag string
	)
	var demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Build and audit a block on the in-memory chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(senders, perSender, entropyTag)
		},
	}
	demoCmd.Flags().IntVar(&senders, "senders", 3, "number of senders")
	demoCmd.Flags().IntVar(&perSender, "per-sender", 4, "extrinsics per sender")
	demoCmd.Flags().StringVar(&entropyTag, "entropy", "demo", "entropy tag for the block seed")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("orderaudit %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}

	rootCmd.AddCommand(vectorsCmd, interleaveCmd, demoCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		if code := sdkerrors.GetErrorCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", sdkerrors.GetErrorName(err), err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}
