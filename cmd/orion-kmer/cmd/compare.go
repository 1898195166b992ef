package cmd

import (
	"io"

	orionkmer "github.com/motroy/orion-kmer"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Jaccard comparison of two k-mer databases",
	Long: `compare loads two databases and reports the size of the intersection and
union of their unified k-mer sets, and the Jaccard index between them, as
a single JSON document.
`,
	Run: func(cmd *cobra.Command, args []string) {
		db1 := getFlagString(cmd, "db1")
		db2 := getFlagString(cmd, "db2")
		checkInputFiles(db1, db2)
		out := getFlagString(cmd, "out")

		log.Infof("comparing %s against %s", db1, db2)
		result, err := orionkmer.RunCompare(db1, db2)
		checkError(err)
		log.Infof("jaccard_index=%.4f", result.JaccardIndex)

		err = orionkmer.WriteAtomicFile(out, func(w io.Writer) error {
			return orionkmer.WriteJSON(w, result)
		})
		checkError(err)
	},
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("db1", "", "first database path")
	compareCmd.Flags().String("db2", "", "second database path")
	compareCmd.Flags().StringP("out", "o", "-", "output path (\"-\" for stdout)")
}
