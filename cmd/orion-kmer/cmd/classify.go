package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	orionkmer "github.com/motroy/orion-kmer"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "multi-reference coverage and depth report for an input against one or more databases",
	Long: `classify filters an input's canonical k-mer multiset by minimum frequency,
then reports per-reference breadth of coverage and depth against one or
more databases, as a single JSON document and an optional flat TSV.
`,
	Run: func(cmd *cobra.Command, args []string) {
		input := getFlagString(cmd, "in")
		dbs := getFlagStringSlice(cmd, "databases")
		if input == "" || len(dbs) == 0 {
			checkError(fmt.Errorf("-i/--in and at least one -d/--databases are required"))
		}
		checkInputFiles(append([]string{input}, dbs...)...)
		out := getFlagString(cmd, "out")

		var userK *int
		if cmd.Flags().Changed("kmer-len") {
			k := getFlagInt(cmd, "kmer-len")
			userK = &k
		}

		opt := orionkmer.ClassifyOptions{
			InputFile:        input,
			DatabasePaths:    dbs,
			UserK:            userK,
			MinKmerFrequency: getFlagInt(cmd, "min-kmer-frequency"),
			MinCoverage:      getFlagFloat64(cmd, "min-coverage"),
			Threads:          resolveThreadsFlag(cmd),
		}

		log.Infof("classifying %s against %d database(s)", input, len(dbs))
		result, err := orionkmer.RunClassify(opt)
		checkError(err)
		log.Infof("%s unique k-mer(s) in input survive min-kmer-frequency=%d",
			humanize.Comma(int64(result.TotalUniqueKmersInInput)), result.MinKmerFrequencyFilter)
		for _, da := range result.DatabasesAnalyzed {
			log.Infof("%s: %d reference(s) retained, overall breadth %.4f",
				da.DatabasePath, len(da.References), da.ProportionDBKmersCoveredOverall)
		}

		err = orionkmer.WriteAtomicFile(out, func(w io.Writer) error {
			return orionkmer.WriteJSON(w, result)
		})
		checkError(err)

		if tsvPath := getFlagString(cmd, "output-tsv"); tsvPath != "" {
			checkError(orionkmer.WriteAtomicFile(tsvPath, func(w io.Writer) error {
				return orionkmer.WriteClassifyTSV(w, result)
			}))
		}
	},
}

func init() {
	RootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("in", "i", "", "input FASTA/FASTQ file to classify")
	classifyCmd.Flags().StringSliceP("databases", "d", nil, "database path(s)")
	classifyCmd.Flags().StringP("out", "o", "-", "output path (\"-\" for stdout)")
	classifyCmd.Flags().IntP("kmer-len", "k", 0, "override k-mer size (default: taken from the first database)")
	classifyCmd.Flags().Int("min-kmer-frequency", 1, "minimum occurrence in the input to keep a k-mer")
	classifyCmd.Flags().Float64("min-coverage", 0.0, "minimum reference breadth of coverage to include a reference")
	classifyCmd.Flags().String("output-tsv", "", "optional flat TSV sink")
}
