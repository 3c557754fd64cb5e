package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
)

func newPortfolioFixture(t *testing.T) *PortfolioService {
	t.Helper()
	base := t.TempDir()

	path := filepath.Join(base, "Relaciones de cartera", "Cartera Metlife.xlsx")
	require.NoError(t, writePortfolioWorkbook(path))

	return NewPortfolioService(ledger.NewStore(), ledger.NewResolver(base))
}

func writePortfolioWorkbook(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Vida"); err != nil {
		return err
	}
	if _, err := f.NewSheet("GMM"); err != nil {
		return err
	}
	vida := [][]any{
		{"Póliza", "Contratante"},
		{"100", "ANA LOPEZ"},
		{"200", "LUIS MARIN"},
	}
	gmm := [][]any{
		{"POLIZA", "CONTRATANTE"},
		{"300", "ANA LOPEZ"},
	}
	for i, row := range vida {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Vida", cell, &row); err != nil {
			return err
		}
	}
	for i, row := range gmm {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("GMM", cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return err
	}
	return f.Close()
}

func TestPortfolioSearch_CaseInsensitiveAcrossSheets(t *testing.T) {
	svc := newPortfolioFixture(t)

	got, err := svc.Search("ana lopez")
	require.NoError(t, err)
	require.Len(t, got, 2)

	lines := map[string]bool{}
	for _, row := range got {
		tag, ok := ledger.CellString(row["Tipo"])
		require.True(t, ok)
		lines[tag] = true
	}
	assert.True(t, lines["VIDA"])
	assert.True(t, lines["GMM"])
}

func TestPortfolioSearch_NoMatches(t *testing.T) {
	svc := newPortfolioFixture(t)

	got, err := svc.Search("inexistente")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPortfolioSearch_MissingWorkbookContributesNothing(t *testing.T) {
	svc := NewPortfolioService(ledger.NewStore(), ledger.NewResolver(t.TempDir()))

	got, err := svc.Search("ana")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollections(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "Bases de cobranza y comisiones", "Metlife base cobranza.xlsx")
	writeFixtureWorkbook(t, path, "Vida", [][]any{
		{"Póliza", "Recibo", "Prima"},
		{"100", "R-1", "5000"},
	})

	svc := NewCollectionService(ledger.NewStore(), ledger.NewResolver(base))

	// The fixture only carries the Vida sheet.
	rows, err := svc.Collections(models.CarrierMetlife, models.LineLife)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	recibo, _ := ledger.CellString(rows[0]["Recibo"])
	assert.Equal(t, "R-1", recibo)
}

func TestCollections_MissingLedgerIsEmpty(t *testing.T) {
	svc := NewCollectionService(ledger.NewStore(), ledger.NewResolver(t.TempDir()))

	rows, err := svc.Collections(models.CarrierMetlife, models.LineHealth)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
