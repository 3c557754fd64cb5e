package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Plauto679/taiico-crm/internal/adapters"
	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
)

func writeFixtureWorkbook(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func newRenewalFixture(t *testing.T) (*RenewalService, string) {
	t.Helper()
	base := t.TempDir()
	store := ledger.NewStore()
	resolver := ledger.NewResolver(base)
	registry := adapters.NewRegistry()

	svc := NewRenewalService(store, resolver, registry)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	gmmPath := filepath.Join(base, "Fechas de emision de Polizas y renovaciones", "Metlife GMM.xlsx")
	writeFixtureWorkbook(t, gmmPath, "GMM", [][]any{
		{"POLIZA", "CONTRATANTE", "FFINVIG", "PRIMA", "ESTATUS"},
		{"500.0", "ANA LOPEZ", "2025-06-15", "$10,000.00", "Por renovar"},
		{"600", "LUIS MARIN", "2025-09-01", "8000", "Por renovar"},
		{"700", "EVA RIOS", "", "5000", "Vencida"},
	})
	return svc, gmmPath
}

func TestUpcomingRenewals_FiltersByRange(t *testing.T) {
	svc, _ := newRenewalFixture(t)

	got, err := svc.UpcomingRenewals(models.CarrierMetlife, models.LineHealth, "2025-06-01", "2025-06-30", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "500", got[0].PolicyNumber)
	require.NotNil(t, got[0].PremiumAmount)
	assert.Equal(t, 10000.0, *got[0].PremiumAmount)
	require.NotNil(t, got[0].CoverageEnd)
	assert.Equal(t, "2025-06-15", *got[0].CoverageEnd)
}

func TestUpcomingRenewals_DefaultLookahead(t *testing.T) {
	svc, _ := newRenewalFixture(t)

	// Pinned today is 2025-06-01; the 30-day window reaches 2025-07-01.
	got, err := svc.UpcomingRenewals(models.CarrierMetlife, models.LineHealth, "", "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "500", got[0].PolicyNumber)
}

func TestUpcomingRenewals_MissingLedgerDegradesToEmpty(t *testing.T) {
	svc, _ := newRenewalFixture(t)

	got, err := svc.UpcomingRenewals(models.CarrierAXA, models.LineLife, "2025-01-01", "2025-12-31", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpcomingRenewals_UnknownPair(t *testing.T) {
	svc, _ := newRenewalFixture(t)

	_, err := svc.UpcomingRenewals(models.CarrierGNP, models.LineLife, "", "", 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpcomingAcross_AggregatesAndFilters(t *testing.T) {
	svc, _ := newRenewalFixture(t)

	got, err := svc.UpcomingAcross("", "", "2025-01-01", "2025-12-31", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.UpcomingAcross(models.CarrierMetlife, models.LineHealth, "2025-01-01", "2025-12-31", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.UpcomingAcross(models.CarrierAXA, "", "2025-01-01", "2025-12-31", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateRenewal_NormalizedIdentifierMatch(t *testing.T) {
	svc, path := newRenewalFixture(t)

	status := "Renovada"
	caseFile := "/expedientes/500"
	err := svc.UpdateRenewal(models.UpdateRenewalRequest{
		Carrier:       models.CarrierMetlife,
		ProductLine:   models.LineHealth,
		PolicyNumber:  "500", // sheet stores "500.0"
		RenewalStatus: &status,
		CaseFile:      &caseFile,
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("GMM")
	require.NoError(t, err)

	header := rows[0]
	statusIdx, caseIdx := -1, -1
	for i, h := range header {
		switch h {
		case "ESTATUS":
			statusIdx = i
		case "EXPEDIENTE":
			caseIdx = i
		}
	}
	require.GreaterOrEqual(t, statusIdx, 0)
	require.GreaterOrEqual(t, caseIdx, 0)

	assert.Equal(t, "Renovada", rows[1][statusIdx])
	assert.Equal(t, "/expedientes/500", rows[1][caseIdx])
	// Untouched rows keep their status.
	assert.Equal(t, "Por renovar", rows[2][statusIdx])
}

func TestUpdateRenewal_UnknownPolicyWritesNothing(t *testing.T) {
	svc, path := newRenewalFixture(t)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	status := "Renovada"
	err = svc.UpdateRenewal(models.UpdateRenewalRequest{
		Carrier:       models.CarrierMetlife,
		ProductLine:   models.LineHealth,
		PolicyNumber:  "999",
		RenewalStatus: &status,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMarkNotified(t *testing.T) {
	svc, path := newRenewalFixture(t)

	require.NoError(t, svc.MarkNotified(models.CarrierMetlife, models.LineHealth, "600"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("GMM")
	require.NoError(t, err)

	header := rows[0]
	notifiedIdx := -1
	for i, h := range header {
		if h == "NOTIFICADO" {
			notifiedIdx = i
		}
	}
	require.GreaterOrEqual(t, notifiedIdx, 0)
	assert.Equal(t, "sent", rows[2][notifiedIdx])
}
