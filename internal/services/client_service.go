package services

import (
	"fmt"
	"strings"

	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/repository"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

// ClientService wraps the Excel-backed client directory with request
// validation.
type ClientService struct {
	directory *repository.ClientDirectory
}

func NewClientService(directory *repository.ClientDirectory) *ClientService {
	return &ClientService{directory: directory}
}

func (s *ClientService) ListClients() ([]models.Client, error) {
	return s.directory.List()
}

func (s *ClientService) AddClient(c models.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	return s.directory.Add(c)
}

func (s *ClientService) UpdateClient(originalName string, c models.Client) error {
	if strings.TrimSpace(originalName) == "" {
		return fmt.Errorf("original client name is required")
	}
	if err := validateClient(c); err != nil {
		return err
	}
	return s.directory.Update(originalName, c)
}

func (s *ClientService) DeleteClient(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("client name is required")
	}
	return s.directory.Delete(name)
}

// SearchEmail resolves a client's address by normalized-name lookup.
func (s *ClientService) SearchEmail(name string) (string, error) {
	return s.directory.LookupEmail(name)
}

func validateClient(c models.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("client name is required")
	}
	if c.Email != nil && strings.TrimSpace(*c.Email) != "" {
		if ok, err := utils.ValidateEmail(strings.TrimSpace(*c.Email)); !ok {
			return err
		}
	}
	return nil
}
