package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema <table.dbf>",
	Short: "Describe a table's header and fields",
	Long: `Describe a table's header: dialect, record count, last update and
the field descriptor table.

Example:
  dbfkit schema customers.dbf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := openTable(cmd, args[0])
		if err != nil {
			return err
		}

		schema := table.Schema()
		fmt.Printf("Version:      %s\n", schema.Version)
		fmt.Printf("Records:      %d\n", schema.RecordCount)
		fmt.Printf("Last update:  %s\n", schema.LastUpdated.Format("2006-01-02"))
		fmt.Printf("Record size:  %d bytes\n\n", schema.RecordLength)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tSIZE\tDECIMALS")
		for _, f := range schema.Fields {
			fmt.Fprintf(w, "%s\t%c\t%d\t%d\n", f.Name, byte(f.Type), f.Size, f.Decimals)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
