package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbfkit/dbfkit/pkg/dbf"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <table.dbf>",
	Short: "Dump a table's records to stdout",
	Long: `Dump a table's records to stdout as JSON lines or CSV.

Example:
  dbfkit dump customers.dbf --memo customers.dbt --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := openTable(cmd, args[0])
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")

		switch format {
		case "json":
			return dumpJSON(table, limit)
		case "csv":
			return dumpCSV(table, limit)
		}
		return fmt.Errorf("format must be json or csv, got %q", format)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().String("format", "json", "Output format: json or csv")
	dumpCmd.Flags().Int("limit", 0, "Stop after this many records (0 = all)")
}

func dumpJSON(table *dbf.Table, limit int) error {
	enc := json.NewEncoder(os.Stdout)

	count := 0
	it := table.Iterator()
	for it.Next() && (limit <= 0 || count < limit) {
		rec := it.Record()
		line := map[string]interface{}{"fields": rec.Fields}
		if rec.Deleted {
			line["deleted"] = true
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
		count++
	}
	return it.Err()
}

func dumpCSV(table *dbf.Table, limit int) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	schema := table.Schema()
	header := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		header[i] = f.Name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	count := 0
	it := table.Iterator()
	for it.Next() && (limit <= 0 || count < limit) {
		rec := it.Record()
		row := make([]string, len(schema.Fields))
		for i, f := range schema.Fields {
			row[i] = formatCell(rec.Fields[f.Name])
		}
		if err := w.Write(row); err != nil {
			return err
		}
		count++
	}
	return it.Err()
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", value)
}
