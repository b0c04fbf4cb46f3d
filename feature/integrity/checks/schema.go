package checks

import (
	"fmt"
	"reflect"
	"strings"

	"mccraft/core/database"
	"mccraft/feature/recipes/models"

	"gorm.io/gorm"
)

// SchemaReport is the result of a schema integrity check.
type SchemaReport struct {
	Matched            bool                   `json:"matched"`
	Tables             map[string]TableReport `json:"tables"`
	MissingForeignKeys []string               `json:"missing_foreign_keys"`
	MissingIndexes     []string               `json:"missing_indexes"`
	// InterruptedImport is set when constraints dropped by an import were never restored.
	InterruptedImport bool     `json:"interrupted_import"`
	Errors            []string `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the recipe tables using the GORM models as the source of truth,
// then looks for the named foreign keys and indexes.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched:            true,
		Tables:             make(map[string]TableReport),
		MissingForeignKeys: []string{},
		MissingIndexes:     []string{},
		Errors:             []string{},
	}

	for _, model := range models.All() {
		tableName, tbl, err := checkTable(db, model)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.Matched = false
			continue
		}
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	checkConstraints(db, report)
	return report, nil
}

func checkTable(db *gorm.DB, model interface{}) (string, TableReport, error) {
	tabler, ok := model.(interface{ TableName() string })
	if !ok {
		return "", TableReport{}, fmt.Errorf("model %T does not implement TableName", model)
	}
	tableName := tabler.TableName()

	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualCols, err := database.GetTableColumns(db, tableName)
	if err != nil {
		return tableName, tbl, fmt.Errorf("Failed to inspect table %s: %v", tableName, err)
	}
	if len(actualCols) == 0 {
		return tableName, tbl, fmt.Errorf("table %s does not exist", tableName)
	}

	actualMap := make(map[string]database.ColumnInfo)
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	val := reflect.TypeOf(model).Elem()
	for i := 0; i < val.NumField(); i++ {
		gormTag := val.Field(i).Tag.Get("gorm")

		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}

		actCol, exists := actualMap[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			tbl.Status = "error"
			continue
		}

		// Only columns with an explicit type are compared
		if expType := strings.ToLower(parseGormType(gormTag)); expType != "" {
			if !strings.Contains(actCol.Type, expType) {
				mismatch := fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type)
				tbl.TypeMismatches = append(tbl.TypeMismatches, mismatch)
				tbl.Status = "error"
			}
		}
	}

	return tableName, tbl, nil
}

func checkConstraints(db *gorm.DB, report *SchemaReport) {
	dialect := db.Dialector.Name()

	fks := make(map[string]map[string]bool)
	for _, fk := range models.ForeignKeysFor(dialect) {
		present, ok := fks[fk.Table]
		if !ok {
			names, err := database.GetTableForeignKeys(db, fk.Table)
			if err != nil {
				report.Errors = append(report.Errors, err.Error())
				report.Matched = false
				return
			}
			present = toSet(names)
			fks[fk.Table] = present
		}
		if !present[fk.Name] {
			report.MissingForeignKeys = append(report.MissingForeignKeys, fk.Name)
			report.InterruptedImport = report.InterruptedImport || fk.Relaxed
		}
	}

	indexes := make(map[string]map[string]bool)
	for _, ix := range models.Indexes {
		present, ok := indexes[ix.Table]
		if !ok {
			names, err := database.GetTableIndexes(db, ix.Table)
			if err != nil {
				report.Errors = append(report.Errors, err.Error())
				report.Matched = false
				return
			}
			present = toSet(names)
			indexes[ix.Table] = present
		}
		if !present[ix.Name] {
			report.MissingIndexes = append(report.MissingIndexes, ix.Name)
			report.InterruptedImport = report.InterruptedImport || ix.Relaxed
		}
	}

	if len(report.MissingForeignKeys) > 0 || len(report.MissingIndexes) > 0 {
		report.Matched = false
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
