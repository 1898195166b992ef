package cmd

import (
	"fmt"
	"os"

	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

// VERSION is the orion-kmer release version.
const VERSION = "0.1.0"

var log = logging.MustGetLogger("orion-kmer")

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "orion-kmer",
	Short: "canonical k-mer extraction, indexing, and comparison",
	Long: fmt.Sprintf(`orion-kmer - canonical k-mer extraction, indexing, and comparison

A command-line toolkit for counting, building reference databases from,
comparing, querying, and classifying against fixed-length canonical DNA
k-mers (k <= 32) drawn from FASTA/FASTQ sequence files.

Version: %s
`, VERSION),
}

// Execute runs the root command; subcommands register themselves on
// RootCmd in their own init functions. Called once from main.main; a
// nonzero exit on any fatal error (§7).
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().IntP("threads", "j", 0, "number of worker threads to use (0 = all logical cores)")
	RootCmd.PersistentFlags().CountP("verbose", "v", "increase verbosity (repeatable)")

	cobra.OnInitialize(func() {
		setLogLevel(getFlagCount(RootCmd, "verbose"))
	})
}

// setLogLevel raises the backend level from Warning (the default) to
// Info on the first -v and Debug on the second or later, matching the
// teacher's repeated-flag convention (§9 AMBIENT STACK).
func setLogLevel(verbosity int) {
	switch {
	case verbosity >= 2:
		logging.SetLevel(logging.DEBUG, "orion-kmer")
	case verbosity == 1:
		logging.SetLevel(logging.INFO, "orion-kmer")
	default:
		logging.SetLevel(logging.WARNING, "orion-kmer")
	}
}
