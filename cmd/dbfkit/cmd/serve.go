package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbfkit/dbfkit/pkg/api"
	"github.com/dbfkit/dbfkit/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a directory of DBF tables as a JSON gateway",
	Long: `Serve a directory of DBF tables over HTTP. Tables are decoded on
request; the gateway never writes to the source files.

Example:
  dbfkit serve --data-dir ./tables --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("encoding") {
			cfg.Decode.Encoding, _ = cmd.Flags().GetString("encoding")
		}
		if cmd.Flags().Changed("mode") {
			cfg.Decode.Mode, _ = cmd.Flags().GetString("mode")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		return api.StartServer(api.ServerConfig{
			Port:            cfg.Port,
			Bind:            cfg.Bind,
			DataDir:         cfg.DataDir,
			Decode:          cfg.Decode.Options(),
			MaxBatchRecords: cfg.Decode.MaxBatchRecords,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to a YAML config file")
	serveCmd.Flags().String("data-dir", "./data", "Directory of .dbf tables to serve")
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
}
