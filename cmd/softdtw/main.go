// Package main provides the soft-DTW command-line tool.
//
// Usage:
//
//	softdtw loss x.json y.json --gamma 0.1 --normalize
//	softdtw align x.pb y.pb --index 2 -o alignment.json
//	softdtw cdist a.json [b.json]
//	softdtw barycenter members1.json members2.pb --length 64 -o center.json
//	softdtw version
//
// Inputs are series datasets in JSON (.json) or protobuf wire (.pb, .binpb) form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ivorforce/tslearn/internal/parallel"
	"github.com/Ivorforce/tslearn/internal/softdtw"
)

const version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	gamma     float64
	normalize bool
	distance  string
	workers   int
	wavefront int
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:          "softdtw",
		Short:        "Soft dynamic time warping for time series datasets",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.Float64Var(&g.gamma, "gamma", 1.0, "smoothing coefficient (> 0)")
	pf.BoolVar(&g.normalize, "normalize", false, "subtract the self-similarity terms")
	pf.StringVar(&g.distance, "distance", "sqeuclidean", "pointwise cost: sqeuclidean or manhattan")
	pf.IntVar(&g.workers, "workers", 0, "worker goroutines (0 = one per CPU, 1 = sequential)")
	pf.IntVar(&g.wavefront, "wavefront-min-cells", 0, "anti-diagonal length that enables cell-parallel sweeps (0 = off)")

	root.AddCommand(
		newLossCmd(g),
		newAlignCmd(g),
		newCDistCmd(g),
		newBarycenterCmd(g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "softdtw %s\n", version)
		},
	}
}

// parallelConfig maps --workers onto a parallel.Config.
func (g *globalFlags) parallelConfig() parallel.Config {
	switch {
	case g.workers == 0:
		return parallel.DefaultConfig()
	case g.workers == 1:
		return parallel.Sequential()
	default:
		return parallel.Config{Enabled: true, NumWorkers: g.workers, MinChunkSize: 2}
	}
}

func (g *globalFlags) distanceFunc() (softdtw.Distance, error) {
	switch g.distance {
	case "sqeuclidean", "":
		return softdtw.SquaredEuclidean{}, nil
	case "manhattan":
		return softdtw.Manhattan{}, nil
	default:
		return nil, fmt.Errorf("unknown distance %q (want sqeuclidean or manhattan)", g.distance)
	}
}

func (g *globalFlags) options() (softdtw.Options, error) {
	dist, err := g.distanceFunc()
	if err != nil {
		return softdtw.Options{}, err
	}
	opts := softdtw.Options{
		Gamma:             g.gamma,
		Normalize:         g.normalize,
		Distance:          dist,
		Parallel:          g.parallelConfig(),
		WavefrontMinCells: g.wavefront,
	}
	if err := opts.Validate(); err != nil {
		return softdtw.Options{}, err
	}
	return opts, nil
}
