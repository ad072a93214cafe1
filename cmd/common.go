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
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/valpere/lantran/internal/store"
	"github.com/valpere/lantran/internal/translator"
)

// newClient resolves credentials from viper (flags, config file, LANTRAN_*)
// and the process environment, and builds a translator client.
func newClient() (*translator.Client, error) {
	var explicit translator.ServiceConfig
	if err := viper.Unmarshal(&explicit); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	env := translator.EnvironmentFromList(os.Environ())
	return translator.New(explicit, env,
		translator.WithHTTPClient(&http.Client{Timeout: settings.Timeout}),
		translator.WithLogger(logger),
		translator.WithUserAgent(fmt.Sprintf("%s/%s", settings.UserAgent, version)),
	)
}

// openStore opens the translation memory at path, falling back to the
// configured default.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		path = settings.DBPath
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// readText returns the positional arguments joined by spaces, or the content
// of file when set.
func readText(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func writeOutput(path, text string) error {
	if path == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// canonicalLang checks a language code and returns its canonical BCP 47 form.
// Empty codes pass through.
func canonicalLang(code string) (string, error) {
	if code == "" {
		return "", nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}
