package main

import (
	"fmt"

	"termfolio/internal/profile"

	"github.com/spf13/cobra"
)

// profileCmd groups profile file helpers
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and create profile files",
}

var profileDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective profile as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		data, err := p.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var profileCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d skill categories, %d projects)\n",
			args[0], p.Name, len(p.Skills), len(p.Projects))
		return nil
	},
}

var profileInitCmd = &cobra.Command{
	Use:   "init FILE",
	Short: "Write the built-in profile to FILE as a starting point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.Default().Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileDumpCmd, profileCheckCmd, profileInitCmd)
}
