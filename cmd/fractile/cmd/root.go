// Package cmd implements the fractile command tree: compress and decompress
// subcommands over the fractal codec, wired the way the reference pack's
// cobra command trees wire their PersistentPreRun log setup.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-fractile/fractile/internal/logctx"
)

// NewRoot builds the fractile root command.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "fractile",
		Short: "fractal range/domain image codec",
		Long:  "fractile compresses and decompresses grayscale images with a partitioned iterated function system codec.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			logctx.New(logctx.Options{Level: logLevel, FilePath: logFile, JSON: logJSON})
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "rotate logs to this file instead of stderr")
	pf.Bool("log-json", false, "emit logs as JSON lines")

	root.AddCommand(newCompressCmd(), newDecompressCmd())
	return root
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("  ", indent), cmd.Use+":", cmd.Short)
	for _, sub := range cmd.Commands() {
		printCommandTree(sub, indent+1)
	}
}
