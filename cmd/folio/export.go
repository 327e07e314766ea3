package main

import (
	"fmt"

	"termfolio/internal/vfs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exportFs is where export writes; tests swap in a memory filesystem.
var exportFs afero.Fs = afero.NewOsFs()

// exportCmd writes the virtual filesystem to disk
var exportCmd = &cobra.Command{
	Use:   "export DIR",
	Short: "Write the virtual filesystem under DIR",
	Long: `Materializes every directory and file of the portfolio filesystem
under DIR, e.g. DIR/home/prasanth/projects/promptpilot.md.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		n, err := vfs.Export(exportFs, vfs.Build(p), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d files to %s\n", n, args[0])
		return nil
	},
}
