/*
Copyright 2020 Google LLC

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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/emergence/internal/analysis"
)

var cfgFile string
var fixturePath string
var databasePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emergence",
	Short: "Ranks artists by how fast they are emerging",
	Long: `Scores artists by week-over-week growth in streams, playlist adds and
listeners, using the two most recent weekly snapshots of each artist.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.emergence.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&fixturePath, "fixture", "f", "./fixtures/artists.json", "Path to the artist metrics fixture (JSON or YAML)")
	viper.BindPFlag("fixture", rootCmd.PersistentFlags().Lookup("fixture"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "", "Path to a SQLite snapshot database, used instead of the fixture when set")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	defaults := analysis.DefaultWeights()
	viper.SetDefault("weights.stream", defaults.Stream)
	viper.SetDefault("weights.playlist", defaults.Playlist)
	viper.SetDefault("weights.listener", defaults.Listener)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".emergence" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".emergence")
	}

	// EMERGENCE_WEIGHTS_STREAM etc.
	viper.SetEnvPrefix("emergence")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// weightsFromConfig reads the scoring weights from viper. Missing keys fall
// back to the defaults registered in init.
func weightsFromConfig() analysis.Weights {
	return analysis.Weights{
		Stream:   viper.GetFloat64("weights.stream"),
		Playlist: viper.GetFloat64("weights.playlist"),
		Listener: viper.GetFloat64("weights.listener"),
	}
}
