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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/lantran/internal/tmx"
)

var glossaryDBPath string

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage the terminology glossary",
	Long: `Add, list, and delete terminology glossary entries, and move them in and
out of TMX files.

The glossary is uploaded as the forced glossary of a custom model with
"lantran models create --glossary-from-store", so the service always
translates these terms the same way.`,
}

var (
	glossarySource string
	glossaryTarget string
)

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all glossary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(glossaryDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.ListGlossaryTerms(context.Background(), glossarySource, glossaryTarget)
		if err != nil {
			return fmt.Errorf("failed to list glossary: %w", err)
		}

		if jsonOutput {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("Glossary is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE LANG\tTARGET LANG\tSOURCE TERM\tTARGET TERM")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.SourceLang, e.TargetLang, e.SourceTerm, e.TargetTerm)
		}
		return w.Flush()
	},
}

var glossaryAddCmd = &cobra.Command{
	Use:     "add <source-term> <target-term>",
	Short:   "Add or update a glossary entry",
	Example: `  lantran glossary add "Kyiv" "Київ" --source en --target uk`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, err := glossaryPair()
		if err != nil {
			return err
		}

		db, err := openStore(glossaryDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.AddGlossaryTerm(context.Background(), source, target, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to add glossary entry: %w", err)
		}
		fmt.Printf("Added %s: [%s→%s] %q → %q\n", id, source, target, args[0], args[1])
		return nil
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a glossary entry by ID",
	Long:  `Delete a glossary entry by its ID (shown in "lantran glossary list").`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(glossaryDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteGlossaryTerm(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete glossary entry: %w", err)
		}
		fmt.Printf("Deleted glossary entry: %s\n", args[0])
		return nil
	},
}

var glossaryExportCmd = &cobra.Command{
	Use:     "export [file]",
	Short:   "Export a language pair as a TMX file",
	Example: `  lantran glossary export -s en -t uk terms.tmx`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, err := glossaryPair()
		if err != nil {
			return err
		}

		db, err := openStore(glossaryDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.ListGlossaryTerms(context.Background(), source, target)
		if err != nil {
			return fmt.Errorf("failed to list glossary: %w", err)
		}

		pairs := make([]tmx.Pair, 0, len(entries))
		for _, e := range entries {
			pairs = append(pairs, tmx.Pair{Source: e.SourceTerm, Target: e.TargetTerm})
		}

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := tmx.Write(out, source, target, pairs); err != nil {
			return fmt.Errorf("failed to write TMX: %w", err)
		}
		logger.Debug().Int("terms", len(pairs)).Msg("glossary exported")
		return nil
	},
}

var glossaryImportCmd = &cobra.Command{
	Use:     "import <file>",
	Short:   "Import term pairs from a TMX file",
	Example: `  lantran glossary import -s en -t uk terms.tmx`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, err := glossaryPair()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		pairs, err := tmx.Read(f, source, target)
		if err != nil {
			return fmt.Errorf("failed to read TMX: %w", err)
		}

		db, err := openStore(glossaryDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		for _, p := range pairs {
			if _, err := db.AddGlossaryTerm(ctx, source, target, p.Source, p.Target); err != nil {
				return fmt.Errorf("failed to add glossary entry %q: %w", p.Source, err)
			}
		}
		fmt.Printf("Imported %d entries [%s→%s]\n", len(pairs), source, target)
		return nil
	},
}

// glossaryPair validates and canonicalises the --source/--target flags.
func glossaryPair() (string, string, error) {
	if glossarySource == "" || glossaryTarget == "" {
		return "", "", fmt.Errorf("--source and --target language flags are required")
	}
	source, err := canonicalLang(glossarySource)
	if err != nil {
		return "", "", err
	}
	target, err := canonicalLang(glossaryTarget)
	if err != nil {
		return "", "", err
	}
	return source, target, nil
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryCmd.PersistentFlags().StringVar(&glossaryDBPath, "db", "", "Database path (default $LANTRAN_DB or ./data/lantran.db)")
	glossaryCmd.PersistentFlags().StringVarP(&glossarySource, "source", "s", "", "Source language code (e.g. en)")
	glossaryCmd.PersistentFlags().StringVarP(&glossaryTarget, "target", "t", "", "Target language code (e.g. uk)")

	glossaryCmd.AddCommand(glossaryListCmd)
	glossaryCmd.AddCommand(glossaryAddCmd)
	glossaryCmd.AddCommand(glossaryDeleteCmd)
	glossaryCmd.AddCommand(glossaryExportCmd)
	glossaryCmd.AddCommand(glossaryImportCmd)
}
