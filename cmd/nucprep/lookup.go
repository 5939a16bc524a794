// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/library"
)

var (
	elementLib  string
	materialLib string
	searchPaths []string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Inspect library records",
}

var lookupElementCmd = &cobra.Command{
	Use:   "element <key>",
	Short: "Print an element library record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLookupLibrary(true, false)
		if err != nil {
			return err
		}
		e, ok := lib.Element(args[0])
		if !ok {
			return diag.Fatalf(diag.CodeElementNotFound, args[0],
				"element %s not found in %s", args[0], lib.ElementPath())
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s A=%g Z=%d density=%g isotopes=%d\n", e.Key, e.A, e.Z, e.Density, len(e.Isotopes))
		for _, iso := range e.Isotopes {
			fmt.Fprintf(out, "  %s %g\n", iso.Name, iso.Abundance)
		}
		return nil
	},
}

var lookupMaterialCmd = &cobra.Command{
	Use:   "material <name>",
	Short: "Print a material library record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLookupLibrary(false, true)
		if err != nil {
			return err
		}
		m, ok := lib.Material(args[0])
		if !ok {
			return diag.Fatalf(diag.CodeMaterialNotFound, args[0],
				"material %s not found in %s", args[0], lib.MaterialPath())
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s density=%g elements=%d\n", m.Name, m.Density, len(m.Constituents))
		for _, c := range m.Constituents {
			fmt.Fprintf(out, "  %s %g Z=%d\n", c.Element, c.Density, c.Z)
		}
		return nil
	},
}

func init() {
	lookupCmd.PersistentFlags().StringVar(&elementLib, "elelib", "", "Element library file")
	lookupCmd.PersistentFlags().StringVar(&materialLib, "matlib", "", "Material library file")
	lookupCmd.PersistentFlags().StringSliceVar(&searchPaths, "search-path", nil, "Directories searched for library files")
	lookupCmd.AddCommand(lookupElementCmd, lookupMaterialCmd)
}

func openLookupLibrary(needElements, needMaterials bool) (*library.Library, error) {
	if needElements && elementLib == "" {
		return nil, fmt.Errorf("--elelib is required")
	}
	if needMaterials && materialLib == "" {
		return nil, fmt.Errorf("--matlib is required")
	}
	opts := []library.Option{library.WithLogger(logger), library.WithSearchPaths(searchPaths...)}
	if needElements {
		opts = append(opts, library.WithElementLibrary(elementLib))
	}
	if needMaterials {
		opts = append(opts, library.WithMaterialLibrary(materialLib))
	}
	return library.Open(opts...)
}
