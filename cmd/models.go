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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/lantran/internal/tmx"
	"github.com/valpere/lantran/internal/translator"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List and manage translation models",
	Long: `List the models available to your service instance, inspect one, and
create or delete custom models trained from a base model.`,
}

var (
	modelsListSource  string
	modelsListTarget  string
	modelsListDefault bool
)

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		opts := &translator.ListModelsOptions{Source: modelsListSource, Target: modelsListTarget}
		if cmd.Flags().Changed("default") {
			opts.Default = &modelsListDefault
		}

		var result translator.ModelList
		if err := client.ListModels(context.Background(), opts).Decode(&result); err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		if len(result.Models) == 0 {
			fmt.Println("No models found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL ID\tSOURCE\tTARGET\tBASE\tDOMAIN\tDEFAULT\tCUSTOMIZABLE\tSTATUS")
		for _, m := range result.Models {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\t%v\t%s\n",
				m.ModelID, m.Source, m.Target, m.BaseModelID, m.Domain,
				m.DefaultModel, m.Customizable, m.Status)
		}
		return w.Flush()
	},
}

var modelsGetCmd = &cobra.Command{
	Use:   "get <model-id>",
	Short: "Show a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var model translator.Model
		if err := client.GetModel(context.Background(), &translator.ModelOptions{ModelID: args[0]}).Decode(&model); err != nil {
			return fmt.Errorf("failed to get model: %w", err)
		}

		if jsonOutput {
			return printJSON(model)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Model ID:\t%s\n", model.ModelID)
		fmt.Fprintf(w, "Name:\t%s\n", model.Name)
		fmt.Fprintf(w, "Languages:\t%s → %s\n", model.Source, model.Target)
		fmt.Fprintf(w, "Base model:\t%s\n", model.BaseModelID)
		fmt.Fprintf(w, "Domain:\t%s\n", model.Domain)
		fmt.Fprintf(w, "Owner:\t%s\n", model.Owner)
		fmt.Fprintf(w, "Status:\t%s\n", model.Status)
		return w.Flush()
	},
}

var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <model-id>",
	Short: "Delete a custom model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var result translator.DeleteModelResult
		if err := client.DeleteModel(context.Background(), &translator.ModelOptions{ModelID: args[0]}).Decode(&result); err != nil {
			return fmt.Errorf("failed to delete model: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}
		fmt.Printf("Deleted model %s (%s)\n", args[0], result.Status)
		return nil
	},
}

var (
	createBaseModel         string
	createName              string
	createGlossaryFile      string
	createParallelFile      string
	createMonolingualFile   string
	createGlossaryFromStore bool
	createDBPath            string
)

var modelsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a custom model from a base model",
	Long: `Create a custom model by uploading a forced glossary, a parallel corpus,
or a monolingual corpus on top of a base model.

--glossary-from-store builds the forced glossary from the local glossary
entries (see "lantran glossary") for the base model's language pair.`,
	Example: `  lantran models create --base en-es --name my-model --glossary terms.tmx
  lantran models create --base en-uk --glossary-from-store`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createGlossaryFile != "" && createGlossaryFromStore {
			return fmt.Errorf("--glossary and --glossary-from-store cannot be combined")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		ctx := context.Background()

		opts := &translator.CreateModelOptions{BaseModelID: createBaseModel, Name: createName}

		var files []*os.File
		defer func() {
			for _, f := range files {
				f.Close()
			}
		}()
		open := func(path string) (io.Reader, error) {
			if path == "" {
				return nil, nil
			}
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			files = append(files, f)
			return f, nil
		}

		if opts.ForcedGlossary, err = open(createGlossaryFile); err != nil {
			return err
		}
		if opts.ParallelCorpus, err = open(createParallelFile); err != nil {
			return err
		}
		if opts.MonolingualCorpus, err = open(createMonolingualFile); err != nil {
			return err
		}

		if createGlossaryFromStore {
			glossary, err := glossaryForModel(ctx, client, createBaseModel)
			if err != nil {
				return err
			}
			opts.ForcedGlossary = glossary
		}

		var model translator.Model
		if err := client.CreateModel(ctx, opts).Decode(&model); err != nil {
			return fmt.Errorf("failed to create model: %w", err)
		}

		if jsonOutput {
			return printJSON(model)
		}
		fmt.Printf("Created model %s (%s)\n", model.ModelID, model.Status)
		return nil
	},
}

// glossaryForModel renders the local glossary for the language pair of
// baseModelID as a TMX document.
func glossaryForModel(ctx context.Context, client *translator.Client, baseModelID string) (io.Reader, error) {
	var base translator.Model
	if err := client.GetModel(ctx, &translator.ModelOptions{ModelID: baseModelID}).Decode(&base); err != nil {
		return nil, fmt.Errorf("failed to look up base model: %w", err)
	}

	db, err := openStore(createDBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.ListGlossaryTerms(ctx, base.Source, base.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to list glossary: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no glossary entries for %s→%s", base.Source, base.Target)
	}

	pairs := make([]tmx.Pair, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, tmx.Pair{Source: e.SourceTerm, Target: e.TargetTerm})
	}

	var buf bytes.Buffer
	if err := tmx.Write(&buf, base.Source, base.Target, pairs); err != nil {
		return nil, err
	}
	logger.Info().Int("terms", len(pairs)).Str("base_model_id", baseModelID).Msg("uploading glossary from store")
	return &buf, nil
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsListCmd.Flags().StringVarP(&modelsListSource, "source", "s", "", "Filter by source language")
	modelsListCmd.Flags().StringVarP(&modelsListTarget, "target", "t", "", "Filter by target language")
	modelsListCmd.Flags().BoolVar(&modelsListDefault, "default", false, "Only default models (set =false for non-default)")

	modelsCreateCmd.Flags().StringVar(&createBaseModel, "base", "", "Base model ID (required)")
	modelsCreateCmd.Flags().StringVar(&createName, "name", "", "Name of the new model")
	modelsCreateCmd.Flags().StringVar(&createGlossaryFile, "glossary", "", "Forced glossary TMX file")
	modelsCreateCmd.Flags().StringVar(&createParallelFile, "parallel-corpus", "", "Parallel corpus TMX file")
	modelsCreateCmd.Flags().StringVar(&createMonolingualFile, "monolingual-corpus", "", "Monolingual corpus text file")
	modelsCreateCmd.Flags().BoolVar(&createGlossaryFromStore, "glossary-from-store", false, "Build the forced glossary from the local glossary")
	modelsCreateCmd.Flags().StringVar(&createDBPath, "db", "", "Database path for the local glossary (default $LANTRAN_DB)")
	modelsCreateCmd.MarkFlagRequired("base")

	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsGetCmd)
	modelsCmd.AddCommand(modelsCreateCmd)
	modelsCmd.AddCommand(modelsDeleteCmd)
}
