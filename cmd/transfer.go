package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sadopc/punchclock/internal/export"
	"github.com/sadopc/punchclock/internal/record"
)

var (
	importPlacement string
	exportFormat    string
	exportOut       string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge records from an exported JSON file",
	Long: `Merge records from a file written by export. --placement decides where
the imported records go: front (they become the newest), back (they become
the oldest) or auto, which compares the boundary check-ins.`,
	Args: cobra.ExactArgs(1),
	RunE: withEnv(runImport),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all records to a file",
	Args:  cobra.NoArgs,
	RunE:  withEnv(runExport),
}

func init() {
	importCmd.Flags().StringVar(&importPlacement, "placement", "auto", "Where imported records go: front, back, auto")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default <export_dir>/checkinData.json)")
}

func runImport(e *env, cmd *cobra.Command, args []string) error {
	p, err := record.ParsePlacement(importPlacement)
	if err != nil {
		return err
	}
	incoming, err := export.ReadJSON(args[0])
	if err != nil {
		return err
	}
	if err := e.ledger.Import(incoming, p); err != nil {
		return err
	}
	e.log.Info("imported records", "path", args[0], "records", len(incoming), "placement", p.String())
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records (%s). Log now has %d.\n", len(incoming), p, e.ledger.Len())
	return nil
}

func runExport(e *env, cmd *cobra.Command, args []string) error {
	records := e.ledger.Records()

	path := exportOut
	switch exportFormat {
	case "json":
		if path == "" {
			path = export.DefaultPath(e.cfg.ExportDir)
		}
		if err := export.WriteJSON(records, path); err != nil {
			return err
		}
	case "csv":
		if path == "" {
			path = filepath.Join(e.cfg.ExportDir, "checkinData.csv")
		}
		if err := export.WriteCSV(records, path); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", exportFormat)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), path)
	return nil
}
