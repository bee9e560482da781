package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-namer/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the client roster with its file numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("roster")
		if !cmd.Flags().Changed("roster") {
			path = viper.GetString("rename.roster_file")
		}
		r, err := roster.Load(path)
		if err != nil {
			return err
		}
		for i, name := range r.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, name)
		}
		return nil
	},
}

func init() {
	rosterCmd.Flags().String("roster", "", "YAML roster file (default: built-in client list)")
	rootCmd.AddCommand(rosterCmd)
}
