// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/composition"
	"github.com/katalvlaran/nucprep/config"
	"github.com/katalvlaran/nucprep/flux"
	"github.com/katalvlaran/nucprep/library"
	"github.com/katalvlaran/nucprep/logging"
	"github.com/katalvlaran/nucprep/store"
	"github.com/katalvlaran/nucprep/volume"
)

var (
	outputPath string
	dryRun     bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <problem.yaml>",
	Short: "Expand every mixture and assign fluxes to intervals",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Result database (overrides the problem file)")
	resolveCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve but do not write the database")
}

func runResolve(cmd *cobra.Command, args []string) error {
	p, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") && !verbose && p.Logging.Level != "" {
		if logger, err = logging.New(p.Logging, false); err != nil {
			return err
		}
	}

	lib, err := library.Open(append(p.LibraryOptions(), library.WithLogger(logger))...)
	if err != nil {
		return err
	}

	mixes, err := p.BuildMixtures()
	if err != nil {
		return err
	}
	if err = composition.ResolveSimilar(mixes); err != nil {
		return err
	}

	res := composition.NewResolver(lib, composition.WithLogger(logger))
	results := make([]store.Result, 0, len(mixes))
	for _, mix := range mixes {
		isos, err := res.Expand(mix)
		if err != nil {
			return err
		}
		logger.Info("resolved mixture",
			zap.String("mixture", mix.Name),
			zap.Int("isotopes", isos.Len()),
			zap.Float64("total_density", mix.TotalDensity()))
		results = append(results, store.Result{Mixture: mix, Isotopes: isos})
	}

	var vols *volume.Intervals
	if len(p.Fluxes) > 0 {
		if vols, err = assignFluxes(p); err != nil {
			return err
		}
	}

	printResults(cmd.OutOrStdout(), results)

	if dryRun {
		return nil
	}
	out := p.Output
	if outputPath != "" {
		out = outputPath
	}
	db, err := store.Open(cmd.Context(), out, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	run := store.NewRun(args[0], lib.ElementPath(), lib.MaterialPath())
	var src store.FluxSource
	if vols != nil {
		src = vols
	}
	if err = db.Save(cmd.Context(), run, results, src); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "run %s written to %s\n", run.ID, out)
	return nil
}

func assignFluxes(p *config.Problem) (*volume.Intervals, error) {
	descs, err := p.Descriptors()
	if err != nil {
		return nil, err
	}
	// Find logs warning 340 for every unreadable file before the fatal
	// open error from CrossReference.
	for _, d := range descs {
		flux.Find(descs, d.Name, logger)
	}
	order, err := rtfluxByteOrder()
	if err != nil {
		return nil, err
	}

	vols := volume.NewIntervals(p.Intervals...)
	groups := volume.NewGroups(p.Groups)
	err = flux.CrossReference(descs, vols, groups, flux.WithLogger(logger), flux.WithByteOrder(order))
	if err != nil {
		return nil, err
	}
	return vols, nil
}

func printResults(w io.Writer, results []store.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "mixture %s\tvolume fraction %g\ttotal density %g\n",
			r.Mixture.Name, r.Mixture.VolumeFraction(), r.Mixture.TotalDensity())
		for _, iso := range r.Isotopes {
			fmt.Fprintf(tw, "  %s\t%.6e\t\n", iso.Label, iso.Density)
		}
	}
	tw.Flush()
}
