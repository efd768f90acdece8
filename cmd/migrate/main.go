// Command migrate initializes the detection database schema and can
// prune history older than a retention window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Nikhil-S15/Employee-monitoring-system/internal/models"
	"github.com/Nikhil-S15/Employee-monitoring-system/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", filepath.Join("data", "employee_monitoring.db"), "Database path")
	pruneDays := flag.Int("prune", 0, "Delete records older than N days (0 = keep everything)")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// Opening runs the schema migration.
	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Database ready at %s\n", *dbPath)

	repo := sqlite.NewDetectionRepository(db)

	if *pruneDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -*pruneDays)
		deleted, err := repo.DeleteOlderThan(cutoff)
		if err != nil {
			log.Fatalf("Failed to prune detections: %v", err)
		}
		fmt.Printf("Pruned %d records older than %s\n", deleted, cutoff.Format("2006-01-02"))
	}

	total, err := repo.Count(&models.DetectionFilter{})
	if err != nil {
		log.Fatalf("Failed to count detections: %v", err)
	}
	fmt.Printf("Total detection records: %d\n", total)
}
