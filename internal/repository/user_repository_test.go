package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Plauto679/taiico-crm/internal/ledger"
)

func writeUsersWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Usuarios"))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Usuarios", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestVerifyCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.xlsx")
	writeUsersWorkbook(t, path, [][]any{
		{"Usuario", "Password"},
		{"admin", "secreto"},
		{"contadora", "12345.0"}, // numeric cell picked up a float artifact
	})
	repo := NewUserRepository(ledger.NewStore(), path)

	ok, err := repo.VerifyCredentials("admin", "secreto")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.VerifyCredentials("admin", "otra")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.VerifyCredentials("nadie", "secreto")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.VerifyCredentials("contadora", "12345")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyCredentials_MissingWorkbook(t *testing.T) {
	repo := NewUserRepository(ledger.NewStore(), filepath.Join(t.TempDir(), "nope.xlsx"))

	ok, err := repo.VerifyCredentials("admin", "secreto")
	require.NoError(t, err)
	assert.False(t, ok)
}
