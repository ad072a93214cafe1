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
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/lantran/internal/config"
	"github.com/valpere/lantran/internal/logging"
)

var version = "0.1.0"

var (
	cfgFile    string
	envFile    string
	jsonOutput bool
	verbose    bool

	settings *config.Settings
	logger   = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "lantran",
	Short: "Language Translator v2 command-line client",
	Long: `A CLI client for the Language Translator v2 REST API.

Translate text, identify languages, and manage custom translation models.
Credentials come from flags, a config file, LANTRAN_* variables,
LANGUAGE_TRANSLATOR_* variables, or a VCAP_SERVICES service binding.

Use "lantran translate --help" for translation options.`,
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(envFile)
		if err != nil {
			return err
		}
		settings = s

		level := settings.LogLevel
		if verbose {
			level = "debug"
		}
		l, err := logging.New(settings.Environment, level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.lantran.yaml)")
	pf.StringVar(&envFile, "env", ".env", "Path to the .env file")
	pf.BoolVar(&jsonOutput, "json", false, "Print responses as JSON")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log HTTP requests")

	pf.String("username", "", "Service username")
	pf.String("password", "", "Service password")
	pf.String("url", "", "Service endpoint URL")
	pf.String("api-version", "", "API version path segment (default v2)")
	pf.String("token", "", "Bearer token (replaces username/password)")
	pf.Bool("unauthenticated", false, "Send requests without credentials")

	for key, flag := range map[string]string{
		"username":        "username",
		"password":        "password",
		"url":             "url",
		"version":         "api-version",
		"token":           "token",
		"unauthenticated": "unauthenticated",
	} {
		viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".lantran")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("lantran")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
