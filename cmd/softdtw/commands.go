package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Ivorforce/tslearn/internal/barycenter"
	"github.com/Ivorforce/tslearn/internal/seriesio"
	"github.com/Ivorforce/tslearn/internal/softdtw"
)

func newLossCmd(g *globalFlags) *cobra.Command {
	var (
		reduction string
		gradOut   string
	)
	cmd := &cobra.Command{
		Use:   "loss X Y",
		Short: "Soft-DTW loss between two series batches",
		Long: "Computes one soft-DTW value per batch element of X and Y. Each file is\n" +
			"stacked into a single batch; X and Y must have the same batch size and dimension.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			if reduction != "none" && reduction != "mean" && reduction != "sum" {
				return fmt.Errorf("unknown reduction %q (want none, mean or sum)", reduction)
			}
			series, err := loadStacked(args...)
			if err != nil {
				return err
			}
			x, y := series[0], series[1]

			var loss []float64
			if gradOut == "" {
				loss, err = softdtw.Loss(x, y, opts)
			} else {
				var gx softdtw.Series
				loss, gx, _, err = softdtw.LossGrad(x, y, opts)
				if err == nil {
					err = seriesio.WriteFile(gradOut, seriesio.Dataset{gx})
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch reduction {
			case "mean":
				fmt.Fprintln(out, formatFloat(lo.Sum(loss)/float64(len(loss))))
			case "sum":
				fmt.Fprintln(out, formatFloat(lo.Sum(loss)))
			default:
				for b, v := range loss {
					fmt.Fprintf(out, "%d\t%s\n", b, formatFloat(v))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reduction, "reduction", "none", "none, mean or sum")
	cmd.Flags().StringVar(&gradOut, "grad-out", "", "write d(loss)/dX to this file")
	return cmd
}

func newAlignCmd(g *globalFlags) *cobra.Command {
	var (
		index int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "align X Y",
		Short: "Expected soft alignment matrix between two series",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			series, err := loadStacked(args...)
			if err != nil {
				return err
			}
			x, y := series[0], series[1]
			if index < 0 || index >= x.Batch || index >= y.Batch {
				return fmt.Errorf("index %d out of range (batches %d and %d)", index, x.Batch, y.Batch)
			}

			a, costs, err := softdtw.Alignment(x.Single(index), y.Single(index), opts)
			if err != nil {
				return err
			}
			if out != "" {
				s, err := softdtw.NewSeries(a.Data, 1, a.Rows, a.Cols)
				if err != nil {
					return err
				}
				return seriesio.WriteFile(out, seriesio.Dataset{s})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cost\t%s\n", formatFloat(costs[0]))
			printMatrix(w, a.Element(0), a.Rows, a.Cols)
			return nil
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "batch element to align")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the alignment matrix to this file")
	return cmd
}

func newCDistCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cdist A [B]",
		Short: "Cross soft-DTW matrix between two collections",
		Long:  "Prints the soft-DTW value between every series of A and every series of B (default: A).",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			series, err := loadStacked(args...)
			if err != nil {
				return err
			}
			a, b := series[0], series[0]
			if len(series) == 2 {
				b = series[1]
			}
			m, err := softdtw.CDist(a, b, opts)
			if err != nil {
				return err
			}
			printMatrix(cmd.OutOrStdout(), m.Element(0), m.Rows, m.Cols)
			return nil
		},
	}
}

func newBarycenterCmd(g *globalFlags) *cobra.Command {
	cfg := barycenter.DefaultConfig()
	var (
		method string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "barycenter FILE...",
		Short: "Soft-DTW barycenter of every series in the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			switch method {
			case "adam":
				cfg.Method = barycenter.Adam
			case "sgd":
				cfg.Method = barycenter.SGD
			default:
				return fmt.Errorf("unknown method %q (want adam or sgd)", method)
			}
			cfg.Gamma = opts.Gamma
			cfg.Normalize = opts.Normalize
			cfg.Distance = opts.Distance
			cfg.Parallel = opts.Parallel

			ds, err := loadDatasets(args...)
			if err != nil {
				return err
			}
			res, err := barycenter.Compute(ds, cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "members\t%d\n", ds.Count())
			fmt.Fprintf(w, "iterations\t%d\n", res.Iterations)
			fmt.Fprintf(w, "converged\t%t\n", res.Converged)
			fmt.Fprintf(w, "loss\t%s\n", formatFloat(res.Loss[len(res.Loss)-1]))
			if out != "" {
				return seriesio.WriteFile(out, seriesio.Dataset{res.Series})
			}
			printMatrix(w, res.Series.Data, res.Series.Len, res.Series.Dim)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&cfg.Length, "length", 0, "barycenter length (0 = first series length)")
	f.IntVar(&cfg.MaxIter, "iters", cfg.MaxIter, "maximum optimizer steps")
	f.Float64Var(&cfg.LR, "lr", cfg.LR, "learning rate")
	f.Float64Var(&cfg.Momentum, "momentum", 0, "SGD momentum")
	f.Float64Var(&cfg.Tol, "tol", cfg.Tol, "stop when the loss changes by less than this")
	f.Float64SliceVar(&cfg.Weights, "weights", nil, "one weight per series (default: uniform)")
	f.StringVar(&method, "method", "adam", "optimizer: adam or sgd")
	f.StringVarP(&out, "out", "o", "", "write the barycenter to this file")
	return cmd
}

// loadStacked reads each path concurrently and stacks its contents into one batch.
func loadStacked(paths ...string) ([]softdtw.Series, error) {
	out := make([]softdtw.Series, len(paths))
	var eg errgroup.Group
	for i, path := range paths {
		eg.Go(func() error {
			ds, err := seriesio.ReadFile(path)
			if err != nil {
				return err
			}
			s, err := ds.Stack()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// loadDatasets reads each path concurrently and concatenates the results in
// argument order. Series keep their own lengths.
func loadDatasets(paths ...string) (seriesio.Dataset, error) {
	parts := make([]seriesio.Dataset, len(paths))
	var eg errgroup.Group
	for i, path := range paths {
		eg.Go(func() error {
			ds, err := seriesio.ReadFile(path)
			parts[i] = ds
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return lo.FlatMap(parts, func(ds seriesio.Dataset, _ int) []softdtw.Series { return ds }), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func printMatrix(w io.Writer, data []float64, rows, cols int) {
	for i := 0; i < rows; i++ {
		row := lo.Map(data[i*cols:(i+1)*cols], func(v float64, _ int) string {
			return formatFloat(v)
		})
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}
