package repository

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/parse"
)

const (
	colUsername = "Usuario"
	colPassword = "Password"
)

// UserRepository checks login credentials against the users workbook.
type UserRepository struct {
	store *ledger.Store
	path  string
}

func NewUserRepository(store *ledger.Store, path string) *UserRepository {
	return &UserRepository{store: store, path: path}
}

// VerifyCredentials returns whether the username/password pair matches a row
// in the users workbook. A missing workbook means nobody can log in; that is
// reported as a plain false, not an error.
func (r *UserRepository) VerifyCredentials(username, password string) (bool, error) {
	ds, err := r.store.LoadSheet(r.path, "")
	if err != nil {
		if isNotFound(err) {
			slog.Warn("users workbook not found", "path", r.path)
			return false, nil
		}
		return false, err
	}

	for _, row := range ds.Rows {
		user, ok := ledger.CellString(row[colUsername])
		if !ok || strings.TrimSpace(user) != strings.TrimSpace(username) {
			continue
		}
		// Numeric passwords pick up a ".0" when the cell is typed as a
		// number.
		stored := parse.Identifier(row[colPassword])
		return stored == strings.TrimSpace(password), nil
	}
	return false, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
