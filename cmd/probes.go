package cmd

import (
	"encoding/json"
	"os"

	"github.com/hostsnap/hostsnap/internal/probes"
	"github.com/spf13/cobra"
)

var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "Print the probe catalog as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(probes.Descriptors(cfg.Pool))
	},
}

func init() {
	rootCmd.AddCommand(probesCmd)
}
