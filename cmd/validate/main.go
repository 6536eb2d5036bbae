// Command validate checks a directory of source spreadsheets for header
// drift before a load. It maps every workbook's header the same way the
// ETL does and reports which canonical columns resolved, which labels
// were unrecognized, and whether any workbook would be skipped outright.
//
// Usage:
//
//	go run ./cmd/validate -dir data/waste
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/couchcryptid/waste-data-etl/internal/adapter/spreadsheet"
	"github.com/couchcryptid/waste-data-etl/internal/domain"
)

// phase tracks pass/fail for one validated workbook.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dir := flag.String("dir", "", "root directory of regional waste spreadsheets")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dir); code != 0 {
		os.Exit(code)
	}
}

func run(dir string) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reader := spreadsheet.NewReader(logger)

	paths, err := reader.Discover(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: discover workbooks: %v\n", err)
		return 1
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "FATAL: no workbooks under %s\n", dir)
		return 1
	}

	fmt.Println("=== Waste Spreadsheet Header Validation ===")
	fmt.Println()

	phases := make([]*phase, 0, len(paths))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Workbook", "Mapped", "Unrecognized", "Aggregate Rows"})

	for _, path := range paths {
		p := &phase{name: path}
		phases = append(phases, p)

		doc, err := reader.Read(path)
		if err != nil {
			p.errorf("unreadable: %v", err)
			table.Append([]string{path, "-", "-", "-"})
			continue
		}

		mapping := domain.MapHeader(doc.CategoryRow, doc.SubRow)
		if !mapping.Recognized() {
			p.errorf("no recognized headers; workbook would be skipped")
		}
		for _, f := range []domain.Field{domain.FieldSido, domain.FieldSigungu, domain.FieldWasteType, domain.FieldTotalAmount} {
			if mapping.Column(f) < 0 {
				p.errorf("missing core column %s", f)
			}
		}

		totals := 0
		for _, row := range doc.Rows {
			if domain.IsTotalRow(mapping, row) {
				totals++
			}
		}
		if totals == 0 {
			p.errorf("no aggregate rows; workbook would be skipped")
		}

		table.Append([]string{
			path,
			fmt.Sprintf("%d", len(mapping.Columns)),
			fmt.Sprintf("%d", len(mapping.Unrecognized)),
			fmt.Sprintf("%d", totals),
		})
		for _, label := range mapping.Unrecognized {
			fmt.Printf("  note: %s: unmapped column %q\n", path, label)
		}
	}

	table.Render()
	fmt.Println()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("%s %s\n", green("PASS"), p.name)
			continue
		}
		allPassed = false
		fmt.Printf("%s %s\n", red("FAIL"), p.name)
		for _, e := range p.errors {
			fmt.Printf("      %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println()
	fmt.Println(green("All workbooks validated."))
	return 0
}
