package cmd

import (
	"fmt"
	"io"

	orionkmer "github.com/motroy/orion-kmer"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "per-k-mer frequency across one or more FASTA/FASTQ inputs",
	Long: `count tabulates canonical k-mer frequency across one or more FASTA/FASTQ
inputs (transparently decompressing .gz/.xz/.zst/.7z), and writes the
k-mers whose total occurrence is at least --min-count to the output file,
one per line, sorted by encoded value ascending.
`,
	Run: func(cmd *cobra.Command, args []string) {
		files := getFlagStringSlice(cmd, "in")
		if len(files) == 0 {
			checkError(fmt.Errorf("at least one -i/--in file is required"))
		}
		checkInputFiles(files...)

		k := getFlagPositiveInt(cmd, "kmer-len")
		minCount := getFlagInt(cmd, "min-count")
		if minCount < 1 {
			minCount = 1
		}
		out := getFlagString(cmd, "out")

		opt := orionkmer.CountOptions{
			Files:    files,
			K:        k,
			MinCount: minCount,
			Threads:  resolveThreadsFlag(cmd),
		}

		log.Infof("counting k-mers (k=%d) across %d file(s)", k, len(files))
		entries, err := orionkmer.RunCount(opt)
		checkError(err)
		log.Infof("%d k-mer(s) passed min-count=%d", len(entries), minCount)

		err = orionkmer.WriteAtomicFile(out, func(w io.Writer) error {
			return orionkmer.WriteCountOutput(w, k, entries)
		})
		checkError(err)
	},
}

func init() {
	RootCmd.AddCommand(countCmd)

	countCmd.Flags().IntP("kmer-len", "k", 0, "k-mer length (1-32)")
	countCmd.Flags().StringSliceP("in", "i", nil, "input FASTA/FASTQ file(s)")
	countCmd.Flags().StringP("out", "o", "-", "output path (\"-\" for stdout)")
	countCmd.Flags().IntP("min-count", "m", 1, "minimum total occurrence to emit a k-mer")
}
