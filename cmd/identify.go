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

	"github.com/valpere/lantran/internal/detector"
	"github.com/valpere/lantran/internal/translator"
)

var (
	identifyInput string
	identifyLocal bool
	identifyLimit int
)

var identifyCmd = &cobra.Command{
	Use:   "identify [text...]",
	Short: "Identify the language of text",
	Long: `Identify the language of text with the remote service, or with the
built-in detector when --local is given (no credentials needed).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args, identifyInput)
		if err != nil {
			return err
		}

		var result translator.IdentifiedLanguages
		if identifyLocal {
			result = detector.New().Identify(text, identifyLimit)
		} else {
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.Identify(context.Background(), &translator.IdentifyOptions{Text: text}).Decode(&result); err != nil {
				return fmt.Errorf("identification failed: %w", err)
			}
			if identifyLimit > 0 && len(result.Languages) > identifyLimit {
				result.Languages = result.Languages[:identifyLimit]
			}
		}

		if jsonOutput {
			return printJSON(result)
		}

		if len(result.Languages) == 0 {
			fmt.Println("No language identified.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LANGUAGE\tCONFIDENCE")
		for _, l := range result.Languages {
			fmt.Fprintf(w, "%s\t%.4f\n", l.Language, l.Confidence)
		}
		return w.Flush()
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages the service can identify",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var result translator.IdentifiableLanguages
		if err := client.ListIdentifiableLanguages(context.Background()).Decode(&result); err != nil {
			return fmt.Errorf("failed to list languages: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME")
		for _, l := range result.Languages {
			fmt.Fprintf(w, "%s\t%s\n", l.Language, l.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(languagesCmd)

	identifyCmd.Flags().StringVarP(&identifyInput, "input", "i", "", "File whose content is identified")
	identifyCmd.Flags().BoolVar(&identifyLocal, "local", false, "Identify with the built-in detector instead of the service")
	identifyCmd.Flags().IntVarP(&identifyLimit, "limit", "n", 5, "Maximum number of candidates to show (0 = all)")
}
