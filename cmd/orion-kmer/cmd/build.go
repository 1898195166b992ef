package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	orionkmer "github.com/motroy/orion-kmer"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "build a persisted per-reference k-mer database from genome files",
	Long: `build aggregates canonical k-mers from one or more genome FASTA/FASTQ
files into a database, one reference per file (keyed by basename), and
persists it atomically to the output path.
`,
	Run: func(cmd *cobra.Command, args []string) {
		files := getFlagStringSlice(cmd, "genomes")
		if len(files) == 0 {
			checkError(fmt.Errorf("at least one -g/--genomes file is required"))
		}
		checkInputFiles(files...)

		k := getFlagPositiveInt(cmd, "kmer-len")
		out := getFlagString(cmd, "out")

		opt := orionkmer.BuildOptions{
			GenomeFiles: files,
			K:           k,
			Threads:     resolveThreadsFlag(cmd),
		}

		log.Infof("building database (k=%d) from %d genome file(s)", k, len(files))
		db, err := orionkmer.RunBuild(opt)
		checkError(err)
		log.Infof("%d reference(s), %s total unique k-mer(s)", db.NumReferences(), humanize.Comma(int64(db.TotalUniqueKmers())))

		checkError(orionkmer.WriteDatabase(db, out))
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().IntP("kmer-len", "k", 0, "k-mer length (1-32)")
	buildCmd.Flags().StringSliceP("genomes", "g", nil, "genome FASTA/FASTQ file(s)")
	buildCmd.Flags().StringP("out", "o", "", "output database path")
}
