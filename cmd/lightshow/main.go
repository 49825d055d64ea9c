// Command lightshow previews and records light shows.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/lightshow"
)

var rootFlags struct {
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "lightshow",
	Short: "Dimming-curve pipeline and pixel preview for light shows",
	Long: "lightshow runs channel intents through dimming curves and renders the\n" +
		"result as preview pixels, to a PNG, a CBOR capture or the terminal.",
	Version:           lightshow.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "log configuration details")
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(watchCmd)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if rootFlags.verbose {
		level = slog.LevelDebug
	}
	lightshow.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
