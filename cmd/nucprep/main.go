// SPDX-License-Identifier: MIT

// Command nucprep resolves mixture compositions and interval fluxes for an
// activation problem and records the results in a SQLite database.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/logging"
)

var (
	// Global flags
	verbose   bool
	logLevel  string
	logDev    bool
	byteOrder string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nucprep",
	Short: "Composition and flux preprocessing for activation problems",
	Long: `nucprep expands declared mixtures into isotope number densities using
element and material libraries, and assigns energy-group flux spectra
(text or RTFLUX binary) to spatial intervals.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.Config{Level: logLevel, Development: logDev}, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logDev, "log-console", false, "Human-readable console logs")
	rootCmd.PersistentFlags().StringVar(&byteOrder, "byte-order", "native", "RTFLUX byte order: native, little or big")

	rootCmd.AddCommand(resolveCmd, lookupCmd, rtfluxCmd)
}

// rtfluxByteOrder maps the --byte-order flag.
func rtfluxByteOrder() (binary.ByteOrder, error) {
	switch strings.ToLower(byteOrder) {
	case "", "native":
		return binary.NativeEndian, nil
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", byteOrder)
}

// exitCode is 1 for fatal errors; warnings never reach here as errors.
func exitCode(err error) int {
	if err == nil || !diag.IsFatal(err) {
		return 0
	}
	return 1
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "nucprep:", err)
	}
	os.Exit(exitCode(err))
}
