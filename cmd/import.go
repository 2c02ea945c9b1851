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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/emergence/internal/loader"
	"github.com/ademuri/emergence/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Imports the fixture into a SQLite snapshot database",
	Long: `Validates the fixture and stores it in the database given by --database.
The previous snapshot in the database is replaced entirely.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("database") == "" {
			return fmt.Errorf("required flag(s) \"database\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := importFixture(os.Stdout, viper.GetString("fixture"), viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importFixture(out io.Writer, fixture, dbPath string) error {
	artists, err := loader.Load(fixture)
	if err != nil {
		return fmt.Errorf("loading fixture: %w", err)
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.ImportArtists(artists); err != nil {
		return fmt.Errorf("importing artists: %w", err)
	}

	count, err := db.CountArtists()
	if err != nil {
		return err
	}
	importedAt, err := db.ImportedAt()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d artists into %s (snapshot of %d artists, %s)\n",
		len(artists), dbPath, count, importedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}
