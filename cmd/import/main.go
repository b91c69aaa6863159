// Command import loads tournaments from a CSV export into the portal
// database. One-off batch tool; the server never runs it.
//
// CSV columns:
//
//	title,description,category,registration_start,registration_end,submission_deadline,entry_fee,status
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"tournament-portal/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	csvPath string
	dsn     string
)

var rootCmd = &cobra.Command{
	Use:   "import",
	Short: "Import tournaments from a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return fmt.Errorf("no DSN: pass --dsn or set DATABASE_URL")
		}

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&models.Tournament{}); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		f, err := os.Open(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()

		r := csv.NewReader(f)
		header, err := r.Read()
		if err != nil {
			return fmt.Errorf("failed to read CSV header: %w", err)
		}
		col := map[string]int{}
		for i, name := range header {
			col[name] = i
		}
		for _, required := range []string{"title", "category", "registration_start"} {
			if _, ok := col[required]; !ok {
				return fmt.Errorf("CSV missing required column %q", required)
			}
		}

		field := func(row []string, name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		imported := 0
		for line := 2; ; line++ {
			row, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

			regStart, err := time.Parse(time.RFC3339, field(row, "registration_start"))
			if err != nil {
				log.Printf("⚠️  line %d: invalid registration_start, skipping: %v", line, err)
				continue
			}

			t := models.Tournament{
				ID:                uuid.NewString(),
				Title:             field(row, "title"),
				Slug:              slug.Make(field(row, "title")),
				Description:       field(row, "description"),
				Category:          field(row, "category"),
				RegistrationStart: regStart,
				Status:            models.TournamentComingSoon,
			}
			if v := field(row, "registration_end"); v != "" {
				if end, err := time.Parse(time.RFC3339, v); err == nil {
					t.RegistrationEnd = end
				}
			}
			if v := field(row, "submission_deadline"); v != "" {
				if d, err := time.Parse(time.RFC3339, v); err == nil {
					t.SubmissionDeadline = &d
				}
			}
			if v := field(row, "entry_fee"); v != "" {
				if fee, err := strconv.ParseFloat(v, 64); err == nil && fee >= 0 {
					t.EntryFee = fee
				}
			}
			if v := models.TournamentStatus(field(row, "status")); v == models.TournamentOpen || v == models.TournamentClosed {
				t.Status = v
			}

			if err := db.Create(&t).Error; err != nil {
				log.Printf("⚠️  line %d: insert failed, skipping: %v", line, err)
				continue
			}
			imported++
		}

		log.Printf("✅ Imported %d tournaments from %s", imported, csvPath)
		return nil
	},
}

func main() {
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "path to the tournaments CSV file")
	rootCmd.Flags().StringVar(&dsn, "dsn", "", "Postgres DSN (defaults to DATABASE_URL)")
	_ = rootCmd.MarkFlagRequired("csv")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
