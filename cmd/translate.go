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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/lantran/internal/chunker"
	"github.com/valpere/lantran/internal/detector"
	"github.com/valpere/lantran/internal/orchestrator"
	"github.com/valpere/lantran/internal/store"
	"github.com/valpere/lantran/internal/translator"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
	modelID    string

	dbPath      string
	noCache     bool
	verifyOut   bool
	maxChars    int
	concurrency int
	protect     bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text",
	Long: `Translate text with a language pair or a specific model.

The text comes from the arguments or from --input. Either --model or at
least one of --source/--target is required.

Results are kept in a local translation memory (see "lantran cache") and
reused for identical requests unless --no-cache is given.

Input longer than --max-chars is split at paragraph or sentence boundaries
and the pieces are translated concurrently.`,
	Example: `  lantran translate -s en -t es "Hello, world"
  lantran translate -m en-es-conversational -i notes.txt -o notes.es.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readText(args, inputFile)
		if err != nil {
			return err
		}

		source, err := canonicalLang(sourceLang)
		if err != nil {
			return err
		}
		target, err := canonicalLang(targetLang)
		if err != nil {
			return err
		}

		ctx := context.Background()
		key := store.MemoryKey{SourceText: text, SourceLang: source, TargetLang: target, ModelID: modelID, Protected: protect}

		var db *store.Store
		if !noCache {
			db, err = openStore(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if cached, found, cacheErr := db.GetCachedTranslation(ctx, key); cacheErr == nil && found {
				logger.Info().Str("source", source).Str("target", target).Msg("using cached translation")
				return emitTranslation(&translator.TranslationResult{
					Translations: []translator.Translation{{Translation: cached}},
				})
			}
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := translatePieces(ctx, client, chunker.Split(text, maxChars), source, target)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		if verifyOut && target != "" {
			if err := detector.New().Verify(result.Text(), target); err != nil {
				logger.Warn().Err(err).Msg("translation language check failed")
			}
		}

		if db != nil {
			if err := db.SaveToMemory(ctx, key, result.Text(), result.WordCount); err != nil {
				logger.Warn().Err(err).Msg("failed to save translation memory")
			}
		}

		return emitTranslation(result)
	},
}

// translatePieces runs one translate request per piece through the
// orchestrator and merges the results in order.
func translatePieces(ctx context.Context, client *translator.Client, pieces []chunker.Piece, source, target string) (*translator.TranslationResult, error) {
	if len(pieces) > 1 {
		logger.Info().Int("pieces", len(pieces)).Int("concurrency", concurrency).Msg("input split for translation")
	}

	o := orchestrator.New(client, orchestrator.OrchestratorConfig{Concurrency: concurrency, Protect: protect})
	res := o.Execute(ctx, chunker.Texts(pieces), translator.TranslateOptions{Source: source, Target: target, ModelID: modelID})
	if err := res.Err(); err != nil {
		return nil, err
	}
	if res.MarkersLost > 0 {
		logger.Warn().Int("markers", res.MarkersLost).Msg("protected placeholders missing from translation")
	}

	return &translator.TranslationResult{
		Translations:   []translator.Translation{{Translation: chunker.Join(pieces, res.Pieces)}},
		WordCount:      res.WordCount,
		CharacterCount: res.CharacterCount,
	}, nil
}

func emitTranslation(result *translator.TranslationResult) error {
	if jsonOutput {
		return printJSON(result)
	}
	if err := writeOutput(outputFile, result.Text()); err != nil {
		return err
	}
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "Translation written to %s\n", outputFile)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for translation (default stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code")
	translateCmd.Flags().StringVarP(&modelID, "model", "m", "", "Model ID to translate with")

	translateCmd.Flags().StringVar(&dbPath, "db", "", "Database path for translation memory (default $LANTRAN_DB)")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory cache")
	translateCmd.Flags().IntVar(&maxChars, "max-chars", chunker.DefaultMaxChars, "Split longer input into concurrent requests (0 = never split)")
	translateCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Maximum requests in flight for split input")
	translateCmd.Flags().BoolVar(&protect, "protect", false, "Keep HTML tags, code and format placeholders ({name}, %s) untranslated")
	translateCmd.Flags().BoolVar(&verifyOut, "verify", false, "Warn when the translation is not in the target language")
}
