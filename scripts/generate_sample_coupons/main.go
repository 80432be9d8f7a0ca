package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"kart-pricing/internal/coupon"

	"github.com/shopspring/decimal"
)

// generateSampleCoupons creates sample coupon definition files for local
// development. The seasonal file redefines SAVE10PCT with a lower pay rate
// to demonstrate the last-file-wins rule.
func main() {
	dataDir := "data/coupons"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := map[string][]coupon.Definition{
		"definitions.jsonl.gz": {
			{Code: "SAVE10PCT", Kind: coupon.KindPercentage, Rate: decimal.RequireFromString("0.90")},
			{Code: "SAVE15PCT", Kind: coupon.KindPercentage, Rate: decimal.RequireFromString("0.85")},
			{Code: "SPEND100SAVE15", Kind: coupon.KindFlatThreshold, Threshold: decimal.RequireFromString("100"), Amount: decimal.RequireFromString("15")},
			{Code: "SPEND250SAVE50", Kind: coupon.KindFlatThreshold, Threshold: decimal.RequireFromString("250"), Amount: decimal.RequireFromString("50")},
			{Code: "SPEND500SAVE120", Kind: coupon.KindFlatThreshold, Threshold: decimal.RequireFromString("500"), Amount: decimal.RequireFromString("120")},
		},
		"seasonal.jsonl.gz": {
			{Code: "SAVE10PCT", Kind: coupon.KindPercentage, Rate: decimal.RequireFromString("0.88")},
			{Code: "SEASON20PCT", Kind: coupon.KindPercentage, Rate: decimal.RequireFromString("0.80")},
			{Code: "SPEND50SAVE5", Kind: coupon.KindFlatThreshold, Threshold: decimal.RequireFromString("50"), Amount: decimal.RequireFromString("5")},
		},
	}

	for filename, defs := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createDefinitionFile(filePath, defs); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d definitions\n", filePath, len(defs))
	}

	fmt.Println("\nSample coupon definition files created successfully!")
	fmt.Println("\nRun the server with:")
	fmt.Println("  COUPON_FILES=data/coupons/definitions.jsonl.gz,data/coupons/seasonal.jsonl.gz")
	fmt.Println("\nNote: SAVE10PCT is redefined in seasonal.jsonl.gz (pay rate 0.88 instead")
	fmt.Println("of 0.90), so the seasonal definition is the one the store serves.")
}

func createDefinitionFile(filePath string, defs []coupon.Definition) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, def := range defs {
		if err := encoder.Encode(def); err != nil {
			return fmt.Errorf("failed to write definition: %w", err)
		}
	}

	return nil
}
