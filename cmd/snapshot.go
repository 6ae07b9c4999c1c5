package cmd

import (
	"github.com/spf13/cobra"

	"vehicle-insights/snapshot"
)

// snapshotCmd captures a running dashboard as an image
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <url> <file>",
	Short: "Save a full-page screenshot of a running dashboard",
	Long: `Open the dashboard at <url> in headless Chrome and save a full-page PNG
to <file>. The browser is taken from CHROME_BIN or looked up on PATH.

Example:
  vehicle-insights snapshot http://localhost:8501/ dashboard.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		return snapshot.New(cfg.ChromeBin, logger).Capture(contextOf(cmd), args[0], args[1])
	},
}
