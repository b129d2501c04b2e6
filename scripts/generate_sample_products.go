//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleProducts writes sample import files for cmd/import.
// products.csv.gz holds five valid rows and two rows that are skipped:
// one without a price and one with a price that does not parse.
func main() {
	dataDir := "data/products"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := [][]string{
		{"name", "description", "price", "category"},
		{"Widget", "Small steel widget", "9.99", "tools"},
		{"Hammer", "Claw hammer", "12.50", "tools"},
		{"Screwdriver Set", "", "19.00", "tools"},
		{"Apple", "Red, crisp", "0.40", "food"},
		{"Olive Oil", "1L bottle", "7.25", "food"},
		{"Mystery Box", "No price yet", "", "misc"},
		{"Broken Row", "", "twelve", "misc"},
	}

	filePath := filepath.Join(dataDir, "products.csv.gz")
	if err := createProductFile(filePath, rows); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d data rows\n", filePath, len(rows)-1)
	fmt.Println("\nImport with:")
	fmt.Printf("  go run ./cmd/import --file %s\n", filePath)
	fmt.Println("\nExpected result: 5 imported, 2 skipped")
}

func createProductFile(filePath string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	writer := csv.NewWriter(gzipWriter)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}
