// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/rtflux"
)

var rtfluxCmd = &cobra.Command{
	Use:   "rtflux <file>",
	Short: "Print the header of an RTFLUX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := rtfluxByteOrder()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return diag.Fatalf(diag.CodeFluxOpen, args[0], "unable to open RTFLUX file %s", args[0]).Wrap(err)
		}
		defer f.Close()

		h, err := rtflux.ReadHeader(bufio.NewReader(f),
			rtflux.WithName(args[0]), rtflux.WithByteOrder(order), rtflux.WithLogger(logger))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "title    %q (version %d)\n", h.Title, h.Version)
		fmt.Fprintf(out, "ndim     %d\n", h.NDim)
		fmt.Fprintf(out, "ngrp     %d\n", h.NGrp)
		fmt.Fprintf(out, "ninti    %d x %d x %d\n", h.NIntI, h.NIntJ, h.NIntK)
		fmt.Fprintf(out, "iter     %d\n", h.Iter)
		fmt.Fprintf(out, "keff     %g\n", h.EffK)
		fmt.Fprintf(out, "power    %g\n", h.Power)
		fmt.Fprintf(out, "nblok    %d (%d groups per block)\n", h.NBlok, h.GroupsPerBlock())
		return nil
	},
}
