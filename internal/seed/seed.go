// Package seed provides the startup inventory catalog.
package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pharmadesk/domain"
)

// Medicines reads the startup catalog from csvPath. When the file is
// missing or yields no usable rows, the built-in starter catalog is
// returned so the store never boots empty.
func Medicines(csvPath string, now time.Time) []domain.Medicine {
	file, err := os.Open(csvPath)
	if err != nil {
		return Defaults(now)
	}
	defer file.Close()

	ms, err := Parse(file)
	if err != nil || len(ms) == 0 {
		return Defaults(now)
	}
	return ms
}

// Parse reads a catalog CSV with a header row and the columns
// name,category,batch_number,expiry_date,stock_quantity,reorder_level,unit_price.
// Malformed rows are skipped.
func Parse(r io.Reader) ([]domain.Medicine, error) {
	reader := csv.NewReader(r)
	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	var out []domain.Medicine
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		if len(record) < 7 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		expiry, err := time.Parse("2006-01-02", strings.TrimSpace(record[3]))
		if err != nil {
			continue
		}
		stock, err := strconv.Atoi(strings.TrimSpace(record[4]))
		if err != nil || stock < 0 {
			continue
		}
		reorder, err := strconv.Atoi(strings.TrimSpace(record[5]))
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[6]))
		if err != nil || price.IsNegative() {
			continue
		}
		out = append(out, domain.Medicine{
			Name:          name,
			Category:      strings.TrimSpace(record[1]),
			BatchNumber:   strings.TrimSpace(record[2]),
			ExpiryDate:    expiry,
			StockQuantity: stock,
			ReorderLevel:  reorder,
			UnitPrice:     price,
		})
	}
	return out, nil
}

// Defaults is the starter catalog used when no CSV is available.
func Defaults(now time.Time) []domain.Medicine {
	return []domain.Medicine{
		{
			Name:          "Paracetamol 500mg",
			Category:      "Analgesic",
			BatchNumber:   "PCM-2401",
			ExpiryDate:    now.AddDate(0, 8, 0),
			StockQuantity: 120,
			ReorderLevel:  30,
			UnitPrice:     decimal.RequireFromString("3.50"),
		},
		{
			Name:          "Amoxicillin 250mg",
			Category:      "Antibiotic",
			BatchNumber:   "AMX-2402",
			ExpiryDate:    now.AddDate(0, 6, 0),
			StockQuantity: 80,
			ReorderLevel:  25,
			UnitPrice:     decimal.RequireFromString("6.20"),
		},
		{
			Name:          "Cetirizine 10mg",
			Category:      "Antihistamine",
			BatchNumber:   "CTZ-2403",
			ExpiryDate:    now.AddDate(0, 14, 0),
			StockQuantity: 60,
			ReorderLevel:  20,
			UnitPrice:     decimal.RequireFromString("2.10"),
		},
		{
			Name:          "Omeprazole 20mg",
			Category:      "Antacid",
			BatchNumber:   "OMP-2404",
			ExpiryDate:    now.AddDate(0, 10, 0),
			StockQuantity: 45,
			ReorderLevel:  15,
			UnitPrice:     decimal.RequireFromString("4.80"),
		},
	}
}
