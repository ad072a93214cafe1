/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/lantran/internal/detector"
	"github.com/valpere/lantran/internal/orchestrator"
	"github.com/valpere/lantran/internal/store"
	"github.com/valpere/lantran/internal/translator"
)

var (
	csvInputFile   string
	csvOutputFile  string
	csvSourceLang  string
	csvTargetLang  string
	csvModelID     string
	csvColumns     []int
	csvConcurrency int
	csvProtect     bool

	csvDBPath  string
	csvNoCache bool
)

type csvCell struct {
	row, col int
	text     string
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Translate columns of a CSV file",
	Long: `Translate one or more columns in a CSV file.

By default all columns are translated. Use -l to select specific columns
(0-indexed). The flag may be repeated to select multiple columns.

Cells found in the translation memory are reused; the rest are translated
concurrently. A cell whose translation fails keeps its original text.`,
	Example: `  lantran translate csv -i data.csv -o out.csv -t uk -l 1 -l 3
  lantran translate csv -i data.csv -o out.csv -m en-es-conversational`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if csvInputFile == csvOutputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		f, err := os.Open(csvInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input CSV: %w", err)
		}
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(records) == 0 {
			return fmt.Errorf("CSV file is empty")
		}

		ctx := context.Background()

		srcLang := csvSourceLang
		if srcLang == "auto" {
			srcLang = ""
			if len(records) > 1 && len(records[1]) > 0 {
				if detected, ok := detector.New().DetectISO(records[1][0]); ok {
					srcLang = detected
					logger.Info().Str("source", srcLang).Msg("detected source language")
				}
			}
		}
		if srcLang, err = canonicalLang(srcLang); err != nil {
			return err
		}
		tgtLang, err := canonicalLang(csvTargetLang)
		if err != nil {
			return err
		}

		var db *store.Store
		if !csvNoCache {
			db, err = openStore(csvDBPath)
			if err != nil {
				return err
			}
			defer db.Close()
		}

		colSet := make(map[int]bool, len(csvColumns))
		for _, c := range csvColumns {
			colSet[c] = true
		}
		translateAll := len(csvColumns) == 0

		out := make([][]string, len(records))
		var pending []csvCell
		for rowIdx, row := range records {
			out[rowIdx] = make([]string, len(row))
			copy(out[rowIdx], row)

			for colIdx, cell := range row {
				if cell == "" || (!translateAll && !colSet[colIdx]) {
					continue
				}
				if db != nil {
					key := store.MemoryKey{SourceText: cell, SourceLang: srcLang, TargetLang: tgtLang, ModelID: csvModelID, Protected: csvProtect}
					if cached, found, cacheErr := db.GetCachedTranslation(ctx, key); cacheErr == nil && found {
						out[rowIdx][colIdx] = cached
						continue
					}
				}
				pending = append(pending, csvCell{row: rowIdx, col: colIdx, text: cell})
			}
		}

		if len(pending) > 0 {
			client, err := newClient()
			if err != nil {
				return err
			}

			texts := make([]string, len(pending))
			for i, c := range pending {
				texts[i] = c.text
			}

			o := orchestrator.New(client, orchestrator.OrchestratorConfig{Concurrency: csvConcurrency, Protect: csvProtect})
			res := o.Execute(ctx, texts, translator.TranslateOptions{Source: srcLang, Target: tgtLang, ModelID: csvModelID})

			failed := 0
			for i, c := range pending {
				if res.Errors[i] != nil {
					failed++
					logger.Warn().Err(res.Errors[i]).Int("row", c.row).Int("col", c.col).Msg("keeping original cell")
					continue
				}
				out[c.row][c.col] = res.Pieces[i]
				if db != nil {
					key := store.MemoryKey{SourceText: c.text, SourceLang: srcLang, TargetLang: tgtLang, ModelID: csvModelID, Protected: csvProtect}
					if err := db.SaveToMemory(ctx, key, res.Pieces[i], 0); err != nil {
						logger.Warn().Err(err).Msg("failed to save translation memory")
					}
				}
			}
			logger.Info().Int("translated", len(pending)-failed).Int("failed", failed).Int("words", res.WordCount).Int("markers_lost", res.MarkersLost).Msg("csv cells processed")
		}

		outFile, err := os.Create(csvOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output CSV: %w", err)
		}
		defer outFile.Close()

		writer := csv.NewWriter(outFile)
		if err := writer.WriteAll(out); err != nil {
			return fmt.Errorf("failed to write output CSV: %w", err)
		}

		fmt.Printf("CSV translated successfully: %s\n", csvOutputFile)
		return nil
	},
}

func init() {
	translateCmd.AddCommand(csvCmd)

	csvCmd.Flags().StringVarP(&csvInputFile, "input", "i", "", "Input CSV file (required)")
	csvCmd.Flags().StringVarP(&csvOutputFile, "output", "o", "", "Output CSV file (required)")
	csvCmd.Flags().StringVarP(&csvSourceLang, "source", "s", "auto", "Source language code (auto = detect from the first data row)")
	csvCmd.Flags().StringVarP(&csvTargetLang, "target", "t", "", "Target language code")
	csvCmd.Flags().StringVarP(&csvModelID, "model", "m", "", "Model ID to translate with")
	csvCmd.Flags().IntSliceVarP(&csvColumns, "column", "l", nil, "Column index to translate (0-indexed, repeatable; default: all columns)")
	csvCmd.Flags().BoolVar(&csvProtect, "protect", false, "Keep HTML tags, code and format placeholders untranslated")
	csvCmd.Flags().IntVar(&csvConcurrency, "concurrency", 4, "Maximum requests in flight")

	csvCmd.Flags().StringVar(&csvDBPath, "db", "", "Database path for translation memory (default $LANTRAN_DB)")
	csvCmd.Flags().BoolVar(&csvNoCache, "no-cache", false, "Disable translation memory cache")

	csvCmd.MarkFlagRequired("input")
	csvCmd.MarkFlagRequired("output")
}
