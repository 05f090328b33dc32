package main

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Poll a directory and convert new PDFs as they appear",
	Long: `Watch scans a directory on a fixed interval (default every 10
minutes, PDFIMAGES_WATCH_INTERVAL) and converts any PDF that does not
yet have an output directory. A scan is skipped if the previous one is
still running. Runs until interrupted.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	converter, cleanup, err := buildConverter(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sample, _ := cmd.Flags().GetInt("sample")
	return converter.WatchDirectory(cmd.Context(), args[0], sample)
}
