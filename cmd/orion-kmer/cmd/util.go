package cmd

import (
	"fmt"
	"os"

	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

// checkError logs err and exits with a nonzero status, the teacher's
// no-panics-escape-main idiom (§9 AMBIENT STACK, §7 propagation policy).
func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func getFlagString(cmd *cobra.Command, name string) string {
	s, err := cmd.Flags().GetString(name)
	checkError(err)
	return s
}

func getFlagStringSlice(cmd *cobra.Command, name string) []string {
	s, err := cmd.Flags().GetStringSlice(name)
	checkError(err)
	return s
}

func getFlagInt(cmd *cobra.Command, name string) int {
	n, err := cmd.Flags().GetInt(name)
	checkError(err)
	return n
}

func getFlagPositiveInt(cmd *cobra.Command, name string) int {
	n := getFlagInt(cmd, name)
	if n <= 0 {
		checkError(fmt.Errorf("value of -%s should be a positive integer", name))
	}
	return n
}

func getFlagFloat64(cmd *cobra.Command, name string) float64 {
	f, err := cmd.Flags().GetFloat64(name)
	checkError(err)
	return f
}

// getFlagCount reads a persistent counted flag (e.g. repeatable --verbose)
// from the root command, falling back to zero when unset.
func getFlagCount(cmd *cobra.Command, name string) int {
	n, err := cmd.Flags().GetCount(name)
	if err != nil {
		return 0
	}
	return n
}

// checkInputFiles verifies every non-stdin path in files exists, naming the
// offending path on failure (teacher's checkFiles idiom in unikmer/cmd).
func checkInputFiles(files ...string) {
	for _, file := range files {
		if file == "-" {
			continue
		}
		ok, err := pathutil.Exists(file)
		if err != nil {
			checkError(fmt.Errorf("cannot stat %s: %w", file, err))
		}
		if !ok {
			checkError(fmt.Errorf("file does not exist: %s", file))
		}
	}
}

// resolveThreadsFlag reads the global --threads flag as given; a value of 0
// ("all logical cores", §5/§6) is passed through unchanged and turned into a
// worker count by the engines via orionkmer.ResolveThreads.
func resolveThreadsFlag(cmd *cobra.Command) int {
	n, err := cmd.Flags().GetInt("threads")
	checkError(err)
	return n
}
