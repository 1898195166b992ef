package cmd

import (
	"io"

	orionkmer "github.com/motroy/orion-kmer"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "select reads whose k-mer content overlaps a database",
	Long: `query streams reads from a FASTA/FASTQ file and emits the ids of those
whose canonical k-mer content hits the database's unified k-mer set at
least --min-hits times. Output order is unspecified.
`,
	Run: func(cmd *cobra.Command, args []string) {
		db := getFlagString(cmd, "database")
		reads := getFlagString(cmd, "reads")
		checkInputFiles(db, reads)
		out := getFlagString(cmd, "out")
		minHits := getFlagInt(cmd, "min-hits")
		if minHits < 1 {
			minHits = 1
		}

		opt := orionkmer.QueryOptions{
			DatabasePath: db,
			ReadsPath:    reads,
			MinHits:      minHits,
			Threads:      resolveThreadsFlag(cmd),
		}

		log.Infof("querying %s against database %s (min-hits=%d)", reads, db, minHits)
		ids, err := orionkmer.RunQuery(opt)
		checkError(err)
		log.Infof("%d read(s) matched", len(ids))

		err = orionkmer.WriteAtomicFile(out, func(w io.Writer) error {
			return orionkmer.WriteQueryOutput(w, ids)
		})
		checkError(err)
	},
}

func init() {
	RootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringP("database", "d", "", "database path")
	queryCmd.Flags().StringP("reads", "r", "", "reads FASTA/FASTQ path")
	queryCmd.Flags().StringP("out", "o", "-", "output path (\"-\" for stdout)")
	queryCmd.Flags().IntP("min-hits", "c", 1, "minimum k-mer hits against the database to select a read")
}
