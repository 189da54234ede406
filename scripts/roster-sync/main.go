// Command roster-sync applies a batch of roster edits from a CSV file to a
// running admin API. Each CSV row is "name,field,value", where field is one
// of the editable paths (attendance, gdScore.fa .. exerciseScore.goodDoc).
// Edits are staged through an editing session and flushed as one bulk save,
// so the server sees the same write the dashboard would produce.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Bitshala/admin/internal/client"
	"github.com/Bitshala/admin/internal/roster"
)

func main() {
	var (
		baseURL  string
		token    string
		week     int
		editsCSV string
		dryRun   bool
		timeout  time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:8080", "Admin API base URL")
	flag.StringVar(&token, "token", os.Getenv("ADMIN_API_TOKEN"), "Bearer token (defaults to ADMIN_API_TOKEN)")
	flag.IntVar(&week, "week", 0, "Week number to edit")
	flag.StringVar(&editsCSV, "edits", "", "Path to CSV file of name,field,value edits")
	flag.BoolVar(&dryRun, "dry-run", false, "Stage edits and report, but do not save")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall operation timeout")
	flag.Parse()

	if editsCSV == "" {
		log.Fatal("missing required -edits flag")
	}

	edits, err := loadEdits(editsCSV)
	if err != nil {
		log.Fatalf("failed to load edits: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	api := client.New(baseURL, client.WithToken(token))
	session := roster.NewSession(api)
	if err := session.Load(ctx, week); err != nil {
		log.Fatalf("failed to load week %d: %v", week, err)
	}

	ids := indexByName(session)

	applied, skipped := 0, 0
	for _, e := range edits {
		id, ok := ids[strings.ToLower(e.name)]
		if !ok {
			fmt.Printf("SKIP %-24s not on the week %d roster\n", e.name, week)
			skipped++
			continue
		}
		if err := session.MutateField(id, e.field, e.value); err != nil {
			fmt.Printf("SKIP %-24s %s=%s: %v\n", e.name, e.field, e.value, err)
			skipped++
			continue
		}
		applied++
	}

	fmt.Printf("Staged %d edits across %d rows (%d skipped)\n", applied, len(session.DirtyIDs()), skipped)

	if dryRun {
		fmt.Println("Dry run, nothing saved")
		return
	}

	if err := session.Save(ctx); err != nil {
		log.Fatalf("save failed, no edits were lost locally: %v", err)
	}
	fmt.Printf("Saved week %d\n", week)
	if skipped > 0 {
		os.Exit(1)
	}
}

type edit struct {
	name  string
	field string
	value string
}

func loadEdits(path string) ([]edit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no edits defined in %s", path)
	}

	edits := make([]edit, 0, len(rows))
	for _, row := range rows {
		edits = append(edits, edit{
			name:  strings.TrimSpace(row[0]),
			field: strings.TrimSpace(row[1]),
			value: strings.TrimSpace(row[2]),
		})
	}
	return edits, nil
}

func indexByName(session *roster.Session) map[string]int {
	ids := make(map[string]int)
	for _, row := range session.Rows() {
		ids[strings.ToLower(row.Name)] = row.ID
	}
	return ids
}
