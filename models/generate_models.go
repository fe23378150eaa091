package models

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

	construction-site-backend column-report

The report lists, per table, database columns that no Go model field maps to.
This catches columns added directly in the Supabase dashboard that the admin
screens would silently ignore.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_slug

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All returns one zero value per table, in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Article{},
		&Project{},
		&ProjectImage{},
		&CaseStudy{},
		&Resource{},
		&TeamMember{},
		&Testimonial{},
		&PartnerLogo{},
		&SocialLink{},
		&User{},
		&UserRole{},
		&ContactSubmission{},
	}
}

// GenerateQueries writes gorm/gen typed query helpers for every model to outPath.
func GenerateQueries(db *gorm.DB, outPath string) {
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
	g.Execute()
}

// ColumnMismatches maps table name to the database columns no model field covers.
func ColumnMismatches(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	cache := &sync.Map{}

	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}

		columnTypes, err := db.Migrator().ColumnTypes(s.Table)
		if err != nil {
			if !db.Migrator().HasTable(s.Table) {
				continue
			}
			return nil, fmt.Errorf("error querying columns for table %s: %w", s.Table, err)
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		report[s.Table] = findColumnMismatches(dbColumns, s.DBNames)
	}

	return report, nil
}

// WriteColumnMismatchReport renders ColumnMismatches the way the CLI prints it.
func WriteColumnMismatchReport(w io.Writer, report map[string][]string) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	total := 0
	for _, table := range tables {
		mismatches := report[table]
		fmt.Fprintf(w, "\n--- Table: %s ---\n", table)
		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		total += len(mismatches)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[strings.ToLower(field)] = true
	}

	mismatches := []string{}
	for _, col := range dbColumns {
		if !modelFieldSet[strings.ToLower(col)] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
