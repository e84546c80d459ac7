/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dbfkit",
	Short: "dbfkit - decode DBF tables and their memo files",
	Long: `dbfkit decodes dBase III/IV and Visual FoxPro tables (.dbf) and
their companion memo files (.dbt/.fpt) into structured records.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("encoding", "latin1", "Default character set for field values")
	rootCmd.PersistentFlags().String("mode", "strict", "Read mode: strict or loose")
	rootCmd.PersistentFlags().Bool("deleted", false, "Include records flagged as deleted")
	rootCmd.PersistentFlags().String("memo", "", "Path to the companion memo file (.dbt/.fpt)")
}

// decodeOptions builds the library options from the persistent flags.
func decodeOptions(cmd *cobra.Command) (dbf.Options, error) {
	flags := cmd.Root().PersistentFlags()
	encoding, _ := flags.GetString("encoding")
	mode, _ := flags.GetString("mode")
	deleted, _ := flags.GetBool("deleted")

	readMode := dbf.ReadMode(mode)
	if readMode != dbf.ModeStrict && readMode != dbf.ModeLoose {
		return dbf.Options{}, fmt.Errorf("mode must be strict or loose, got %q", mode)
	}

	return dbf.Options{
		Encoding:       encoding,
		Mode:           readMode,
		IncludeDeleted: deleted,
	}, nil
}

// openTable reads the table and optional memo file and opens a handle.
func openTable(cmd *cobra.Command, path string) (*dbf.Table, error) {
	opts, err := decodeOptions(cmd)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	var memo []byte
	memoPath, _ := cmd.Root().PersistentFlags().GetString("memo")
	if memoPath != "" {
		memo, err = os.ReadFile(memoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read memo file: %w", err)
		}
	}

	return dbf.Open(data, memo, opts)
}
