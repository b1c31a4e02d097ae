package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

The column-report command lists database columns that have no matching field in
the corresponding Go model. Run it against a live database:

	portfolio-backend column-report

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_id

--- Table: feedback ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Project{},
		&Feedback{},
		&AdminDetails{},
		&AdminCredentials{},
	}
}

// GenerateModels migrates the schema and writes typed query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Set up verbose logging for migration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)

	fmt.Println("Migrating models...")
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}

	if _, err := GenerateColumnMismatchReport(db, os.Stdout); err != nil {
		return err
	}

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport writes a report of database columns that aren't
// accounted for in Go models and returns the total number of mismatches.
func GenerateColumnMismatchReport(db *gorm.DB, w io.Writer) (int, error) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return totalMismatches, fmt.Errorf("parse model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table
		fmt.Fprintf(w, "\n--- Table: %s ---\n", tableName)

		if !db.Migrator().HasTable(model) {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return totalMismatches, fmt.Errorf("error getting columns for table %s: %w", tableName, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		mismatches := findColumnMismatches(dbColumns, getModelFields(stmt.Schema))
		if len(mismatches) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches, nil
}

// getModelFields returns the column names GORM maps for a parsed schema
func getModelFields(s *schema.Schema) []string {
	var fields []string
	for _, field := range s.Fields {
		// Skip relationship and ignored fields
		if field.DBName == "" {
			continue
		}
		fields = append(fields, field.DBName)
	}
	return fields
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool)
	for _, field := range modelFields {
		modelFieldSet[strings.ToLower(field)] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[strings.ToLower(col)] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)

	return mismatches
}
