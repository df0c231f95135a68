package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	csv := strings.NewReader(`name,category,batch_number,expiry_date,stock_quantity,reorder_level,unit_price
Paracetamol 500mg,Analgesic,PCM-2401,2027-04-15,120,30,3.50
,Analgesic,BAD-1,2027-04-15,10,5,1.00
Bad Expiry,Analgesic,BAD-2,15/04/2027,10,5,1.00
Bad Stock,Analgesic,BAD-3,2027-04-15,-4,5,1.00
Cetirizine 10mg,Antihistamine,CTZ-2403,2027-10-10,60,20,2.10
`)
	ms, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	require.Equal(t, "Paracetamol 500mg", ms[0].Name)
	require.Equal(t, "PCM-2401", ms[0].BatchNumber)
	require.Equal(t, 120, ms[0].StockQuantity)
	require.Equal(t, "3.50", ms[0].UnitPrice.StringFixed(2))
	require.Equal(t, time.Date(2027, 4, 15, 0, 0, 0, 0, time.UTC), ms[0].ExpiryDate)
	require.Equal(t, "Cetirizine 10mg", ms[1].Name)
}

func TestMedicinesFallsBackToDefaults(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	ms := Medicines(filepath.Join(t.TempDir(), "missing.csv"), now)
	require.Len(t, ms, 4)
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	require.Equal(t, []string{"Paracetamol 500mg", "Amoxicillin 250mg", "Cetirizine 10mg", "Omeprazole 20mg"}, names)
}

func TestMedicinesReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "name,category,batch_number,expiry_date,stock_quantity,reorder_level,unit_price\n" +
		"Ibuprofen 400mg,Analgesic,IBU-2405,2027-03-20,90,25,4.25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ms := Medicines(path, time.Now())
	require.Len(t, ms, 1)
	require.Equal(t, "IBU-2405", ms[0].BatchNumber)
}

func TestMedicinesFallsBackOnEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,category,batch_number,expiry_date,stock_quantity,reorder_level,unit_price\n"), 0o644))

	ms := Medicines(path, time.Now())
	require.Len(t, ms, 4)
}
