// shuffleviz renders the slot distribution of the fair interleaving: for
// many per-block seeds derived from one entropy value, it counts which
// sender lands in each output slot and draws a stacked bar chart. A fair
// interleaving shows near-uniform per-round stripes.
package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/colorfulnotion/fairdex/common"
	"github.com/colorfulnotion/fairdex/shuffle"
	"github.com/colorfulnotion/fairdex/xoshiro"
)

func slotCounts(senders, perSender, trials int, entropy common.Hash) ([][]int, error) {
	items := make([]shuffle.Item[int, int], 0, senders*perSender)
	for s := 0; s < senders; s++ {
		for n := 0; n < perSender; n++ {
			items = append(items, shuffle.Item[int, int]{Key: s, Value: s})
		}
	}

	slots := len(items)
	counts := make([][]int, slots)
	for i := range counts {
		counts[i] = make([]int, senders)
	}
	for trial := 0; trial < trials; trial++ {
		seed := common.ShuffleSeed(entropy, uint64(trial))
		src, err := xoshiro.New(seed.Bytes())
		if err != nil {
			return nil, err
		}
		for slot, sender := range shuffle.Interleave(items, src) {
			counts[slot][sender]++
		}
	}
	return counts, nil
}

func setupChart(counts [][]int, senders int, trials int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fair Interleaving Slot Distribution",
			Subtitle: fmt.Sprintf("%d senders, %d trials", senders, trials),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	slots := make([]string, len(counts))
	for i := range counts {
		slots[i] = fmt.Sprintf("%d", i)
	}
	bar.SetXAxis(slots)

	for s := 0; s < senders; s++ {
		series := make([]opts.BarData, len(counts))
		for slot := range counts {
			series[slot] = opts.BarData{Value: counts[slot][s]}
		}
		bar.AddSeries(fmt.Sprintf("sender %d", s), series)
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "senders"}))
	return bar
}

func main() {
	var (
		senders    int
		perSender  int
		trials     int
		entropyTag string
		outPath    string
	)

	var rootCmd = &cobra.Command{
		Use:   "shuffleviz",
		Short: "Render the interleaving slot distribution as an HTML chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			entropy := common.Blake2Hash([]byte(entropyTag))
			counts, err := slotCounts(senders, perSender, trials, entropy)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			page := components.NewPage()
			page.AddCharts(setupChart(counts, senders, trials))
			if err := page.Render(f); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().IntVar(&senders, "senders", 4, "number of senders")
	rootCmd.Flags().IntVar(&perSender, "per-sender", 6, "items per sender")
	rootCmd.Flags().IntVar(&trials, "trials", 2000, "number of seeds to sample")
	rootCmd.Flags().StringVar(&entropyTag, "entropy", "shuffleviz", "entropy tag seeding the trials")
	rootCmd.Flags().StringVar(&outPath, "out", "shuffleviz.html", "output HTML file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
