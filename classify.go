package orionkmer

import (
	"fmt"
	"io"
	"sort"
)

// ClassifyOptions configures the Classify Engine (C10).
type ClassifyOptions struct {
	InputFile        string
	DatabasePaths    []string
	UserK            *int // nil means "take k from the first database"
	MinKmerFrequency int  // m >= 1
	MinCoverage      float64
	Threads          int
}

// ReferenceAnalysis is one surviving reference row of a classify report.
type ReferenceAnalysis struct {
	ReferenceName                       string  `json:"reference_name"`
	TotalKmersInReference                int     `json:"total_kmers_in_reference"`
	InputKmersHittingReference           int     `json:"input_kmers_hitting_reference"`
	SumDepthOfMatchedKmersInInput        int     `json:"sum_depth_of_matched_kmers_in_input"`
	AvgDepthOfMatchedKmersInInput        float64 `json:"avg_depth_of_matched_kmers_in_input"`
	ProportionInputKmersHittingReference float64 `json:"proportion_input_kmers_hitting_reference"`
	ReferenceBreadthOfCoverage           float64 `json:"reference_breadth_of_coverage"`
}

// DatabaseAnalysis is one database's classify report.
type DatabaseAnalysis struct {
	DatabasePath                         string               `json:"database_path"`
	DatabaseKmerSize                      int                  `json:"database_kmer_size"`
	TotalUniqueKmersInDBAcrossReferences  int                  `json:"total_unique_kmers_in_db_across_references"`
	OverallInputKmersMatchedInDB          int                  `json:"overall_input_kmers_matched_in_db"`
	OverallSumDepthOfMatchedKmersInInput  int                  `json:"overall_sum_depth_of_matched_kmers_in_input"`
	OverallAvgDepthOfMatchedKmersInInput  float64              `json:"overall_avg_depth_of_matched_kmers_in_input"`
	ProportionInputKmersInDBOverall       float64              `json:"proportion_input_kmers_in_db_overall"`
	ProportionDBKmersCoveredOverall        float64              `json:"proportion_db_kmers_covered_overall"`
	References                            []ReferenceAnalysis `json:"references"`
}

// ClassifyResult is the top-level classify report (§6 "Classify JSON").
type ClassifyResult struct {
	InputFilePath               string              `json:"input_file_path"`
	TotalUniqueKmersInInput     int                 `json:"total_unique_kmers_in_input"`
	MinKmerFrequencyFilter      int                 `json:"min_kmer_frequency_filter"`
	DatabasesAnalyzed           []DatabaseAnalysis  `json:"databases_analyzed"`
}

// RunClassify implements the Classify Engine pipeline of §4.10.
func RunClassify(opt ClassifyOptions) (*ClassifyResult, error) {
	if len(opt.DatabasePaths) == 0 {
		return nil, fmt.Errorf("orionkmer: classify requires at least one database")
	}
	minFreq := opt.MinKmerFrequency
	if minFreq < 1 {
		minFreq = 1
	}

	dbs := make([]*Database, len(opt.DatabasePaths))
	var effectiveK int
	for i, path := range opt.DatabasePaths {
		db, err := loadDatabaseFile(path)
		if err != nil {
			return nil, err
		}
		dbs[i] = db

		if opt.UserK != nil {
			if db.K != *opt.UserK {
				return nil, &UserKValidationError{UserK: *opt.UserK, DBK: db.K, Path: path}
			}
			effectiveK = *opt.UserK
		} else if i == 0 {
			effectiveK = db.K
		} else if db.K != effectiveK {
			return nil, &InterDatabaseKError{FirstK: effectiveK, OtherK: db.K, Path: path}
		}
	}
	if effectiveK < 1 || effectiveK > 32 {
		return nil, &InvalidKmerSizeError{K: effectiveK}
	}

	threads := ResolveThreads(opt.Threads)
	ms := NewKmerMultiset(1 << 16)
	if err := extractFileConcurrent(opt.InputFile, effectiveK, threads, ms.Incr); err != nil {
		return nil, err
	}
	q := ms.FilterMin(minFreq)

	analyses := make([]DatabaseAnalysis, len(dbs))
	for i, db := range dbs {
		analyses[i] = classifyOneDatabase(opt.DatabasePaths[i], db, q, opt.MinCoverage)
	}

	return &ClassifyResult{
		InputFilePath:           opt.InputFile,
		TotalUniqueKmersInInput: len(q),
		MinKmerFrequencyFilter:  minFreq,
		DatabasesAnalyzed:       analyses,
	}, nil
}

// classifyOneDatabase computes the per-reference and overall metrics of
// §4.10 steps 4-5 for one database against the filtered input multiset q.
func classifyOneDatabase(path string, db *Database, q map[uint64]int, minCoverage float64) DatabaseAnalysis {
	labels := db.ReferenceLabels()
	sort.Strings(labels) // stable, testable order (§8 Open Question, resolved in DESIGN.md)

	matchedUnion := make(map[uint64]struct{})
	var refs []ReferenceAnalysis

	for _, label := range labels {
		ref := db.Reference(label)
		refSize := ref.Len()

		sumDepth := 0
		matchedCount := 0
		for code, count := range q {
			if ref.Contains(code) {
				matchedCount++
				sumDepth += count
				matchedUnion[code] = struct{}{}
			}
		}

		var breadth, avgDepth, propInput float64
		if refSize > 0 {
			breadth = float64(matchedCount) / float64(refSize)
		}
		if matchedCount > 0 {
			avgDepth = float64(sumDepth) / float64(matchedCount)
		}
		if len(q) > 0 {
			propInput = float64(matchedCount) / float64(len(q))
		}

		if breadth >= minCoverage {
			refs = append(refs, ReferenceAnalysis{
				ReferenceName:                        label,
				TotalKmersInReference:                refSize,
				InputKmersHittingReference:           matchedCount,
				SumDepthOfMatchedKmersInInput:         sumDepth,
				AvgDepthOfMatchedKmersInInput:         avgDepth,
				ProportionInputKmersHittingReference:  propInput,
				ReferenceBreadthOfCoverage:            breadth,
			})
		}
	}

	overallSumDepth := 0
	for code := range matchedUnion {
		overallSumDepth += q[code]
	}
	overallMatched := len(matchedUnion)

	var overallAvgDepth, propInputOverall, propDBOverall float64
	if overallMatched > 0 {
		overallAvgDepth = float64(overallSumDepth) / float64(overallMatched)
	}
	if len(q) > 0 {
		propInputOverall = float64(overallMatched) / float64(len(q))
	}
	totalDBKmers := db.TotalUniqueKmers()
	if totalDBKmers > 0 {
		propDBOverall = float64(overallMatched) / float64(totalDBKmers)
	}

	return DatabaseAnalysis{
		DatabasePath:                          path,
		DatabaseKmerSize:                       db.K,
		TotalUniqueKmersInDBAcrossReferences:   totalDBKmers,
		OverallInputKmersMatchedInDB:           overallMatched,
		OverallSumDepthOfMatchedKmersInInput:   overallSumDepth,
		OverallAvgDepthOfMatchedKmersInInput:   overallAvgDepth,
		ProportionInputKmersInDBOverall:        propInputOverall,
		ProportionDBKmersCoveredOverall:        propDBOverall,
		References:                             refs,
	}
}

// WriteClassifyTSV writes the flat TSV sink described in §6 "Classify TSV":
// one row per surviving reference, per database, with floats formatted to
// exactly four decimal places.
func WriteClassifyTSV(w io.Writer, result *ClassifyResult) error {
	bw := newTSVWriter(w)
	if err := bw.writeHeader(
		"InputFile", "Database", "Reference", "TotalKmersInReference",
		"InputKmersHittingReference", "SumDepthMatchedKmers", "AvgDepthMatchedKmers",
		"ProportionInputKmersHittingReference", "ReferenceBreadthOfCoverage",
	); err != nil {
		return err
	}
	for _, db := range result.DatabasesAnalyzed {
		for _, ref := range db.References {
			if err := bw.writeRow(
				result.InputFilePath,
				db.DatabasePath,
				ref.ReferenceName,
				ref.TotalKmersInReference,
				ref.InputKmersHittingReference,
				ref.SumDepthOfMatchedKmersInInput,
				formatFloat4(ref.AvgDepthOfMatchedKmersInInput),
				formatFloat4(ref.ProportionInputKmersHittingReference),
				formatFloat4(ref.ReferenceBreadthOfCoverage),
			); err != nil {
				return err
			}
		}
	}
	return bw.flush()
}
