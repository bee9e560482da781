package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-namer/internal/archive"
	"github.com/pdiddy/pdf-namer/internal/pdfinfo"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>",
	Short: "List the entries of a renamed archive with page counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := archive.ReadZipFile(args[0])
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tPAGES")
		for _, info := range pdfinfo.Inspect(a) {
			pages := "-"
			switch {
			case info.Error != "":
				pages = "unreadable"
			case info.Pages > 0:
				pages = fmt.Sprint(info.Pages)
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Name, info.Size, pages)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
