package cmd

import (
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches the flags for the command
func AttachCLIFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "the config file to use")
	cmd.PersistentFlags().Bool("verbose", false, "enable verbose logging")
	cmd.PersistentFlags().String("log-file", "", "the directory to write log files to")
}
