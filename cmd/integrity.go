package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"mccraft/core/database"
	"mccraft/core/storage"
	"mccraft/feature/integrity"
	"mccraft/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the recipe schema and the export bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check recipe tables, indexes and foreign keys",
	Long:  `Reports missing columns and constraints. Constraints left dropped by an interrupted import are restored with --fix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// exportsCheckCmd represents the integrity exports command
var exportsCheckCmd = &cobra.Command{
	Use:   "exports",
	Short: "Check the exports stored in the bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func runIntegrityChecks(ctx context.Context, schema, exports bool) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	var db *gorm.DB
	if schema {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
	}

	var client storage.Client
	if exports {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Import.ExportsPrefix, logg, db)
	results := make(map[string]interface{})
	failed := false

	if schema {
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if fixFlag && (len(report.MissingForeignKeys) > 0 || len(report.MissingIndexes) > 0) {
			restored, err := svc.FixSchema()
			if err != nil {
				return fmt.Errorf("failed to restore constraints: %w", err)
			}
			logg.Info("Restored constraints", zap.Strings("constraints", restored))
			if report, err = svc.CheckSchema(); err != nil {
				return fmt.Errorf("schema check failed: %w", err)
			}
		}
		failed = failed || !report.Matched
		results["schema"] = report
		if !jsonFlag {
			printSchemaReport(report)
		}
	}

	if exports {
		report, err := svc.CheckExports(ctx)
		if err != nil {
			return fmt.Errorf("exports check failed: %w", err)
		}
		if fixFlag && report.RecipeFiles == 0 {
			if err := svc.FixExports(ctx); err != nil {
				return fmt.Errorf("failed to create exports folder: %w", err)
			}
		}
		failed = failed || report.Status != "ok"
		results["exports"] = report
		if !jsonFlag {
			printExportsReport(report)
		}
	}

	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}

	if failed {
		return fmt.Errorf("integrity checks reported problems")
	}
	return nil
}

func printSchemaReport(r *checks.SchemaReport) {
	names := make([]string, 0, len(r.Tables))
	for name := range r.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		t := r.Tables[name]
		rows = append(rows, []string{
			name,
			t.Status,
			strings.Join(t.MissingColumns, ", "),
			strings.Join(t.TypeMismatches, ", "),
		})
	}
	fmt.Println(renderTable([]string{"Table", "Status", "Missing columns", "Type mismatches"}, rows, nil))

	var constraints [][]string
	for _, fk := range r.MissingForeignKeys {
		constraints = append(constraints, []string{fk, "foreign key"})
	}
	for _, ix := range r.MissingIndexes {
		constraints = append(constraints, []string{ix, "index"})
	}
	if len(constraints) > 0 {
		fmt.Println(renderTable([]string{"Missing constraint", "Kind"}, constraints, nil))
	}
	if r.InterruptedImport {
		fmt.Println("An import was interrupted while constraints were dropped. Run 'mccraft migrate' or 'mccraft integrity schema --fix'.")
	}
	for _, e := range r.Errors {
		fmt.Println("error:", e)
	}
}

func printExportsReport(r *checks.ExportsReport) {
	rows := [][]string{
		{"Location", "s3://" + r.Bucket + "/" + r.Prefix},
		{"Recipe files", strconv.Itoa(r.RecipeFiles)},
		{"Tooltip map", strconv.FormatBool(r.TooltipMap)},
		{"Lookup map", strconv.FormatBool(r.LookupMap)},
		{"Missing", strings.Join(r.Missing, ", ")},
		{"Status", r.Status},
	}
	fmt.Println(renderTable([]string{"Exports", ""}, rows, []columnAlignment{alignLeft, alignRight}))
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(exportsCheckCmd)
	integrityCmd.PersistentFlags().BoolVar(&fixFlag, "fix", false, "Repair what can be repaired")
	integrityCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print the reports as JSON")
}
