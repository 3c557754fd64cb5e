package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Plauto679/taiico-crm/internal/adapters"
	"github.com/Plauto679/taiico-crm/internal/ledger"
	"github.com/Plauto679/taiico-crm/internal/mailer"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/repository"
)

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newNotifyFixture(t *testing.T) (*NotifyService, *fakeMailer, *repository.ClientDirectory) {
	t.Helper()
	base := t.TempDir()
	store := ledger.NewStore()
	resolver := ledger.NewResolver(base)
	registry := adapters.NewRegistry()

	renewals := NewRenewalService(store, resolver, registry)
	renewals.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	gmmPath := filepath.Join(base, "Fechas de emision de Polizas y renovaciones", "Metlife GMM.xlsx")
	writeFixtureWorkbook(t, gmmPath, "GMM", [][]any{
		{"POLIZA", "CONTRATANTE", "FFINVIG"},
		{"500", "ANA LOPEZ", "2025-06-15"},
	})

	clientsPath := filepath.Join(base, "clientes.xlsx")
	writeFixtureWorkbook(t, clientsPath, "Clientes", [][]any{
		{"Clientes", "Mail", "Telefono"},
		{"Ana Lopez", "ana@example.com", "5512345678"},
	})
	clients := repository.NewClientDirectory(store, clientsPath)

	mail := &fakeMailer{}
	return NewNotifyService(clients, mail, renewals, nil), mail, clients
}

func noticeRequest() models.NotifyRenewalRequest {
	return models.NotifyRenewalRequest{
		Carrier:      models.CarrierMetlife,
		ProductLine:  models.LineHealth,
		PolicyNumber: "500",
		ClientName:   "ana  LOPEZ", // lookup is by normalized name
		CoverageEnd:  "2025-06-15",
	}
}

func TestSendRenewalNotice_ResolvesRecipientAndSetsMarker(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	result, err := svc.SendRenewalNotice(context.Background(), noticeRequest())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", result.Recipient)
	assert.Equal(t, "500", result.PolicyNumber)
	assert.True(t, result.MarkerSet)

	require.Len(t, mail.sent, 1)
	msg := mail.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "500")
	assert.Contains(t, msg.Body, "2025-06-15")
	assert.Empty(t, msg.Attachments)
}

func TestSendRenewalNotice_NoMailerConfigured(t *testing.T) {
	svc, _, _ := newNotifyFixture(t)
	svc.mail = nil

	_, err := svc.SendRenewalNotice(context.Background(), noticeRequest())
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestSendRenewalNotice_NoAddressOnFile(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	req := noticeRequest()
	req.ClientName = "Cliente Desconocido"
	_, err := svc.SendRenewalNotice(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, mail.sent)
}

func TestSendRenewalNotice_OverrideAddressIsUsedAndLearned(t *testing.T) {
	svc, mail, clients := newNotifyFixture(t)

	override := "nuevo@example.com"
	req := noticeRequest()
	req.ClientName = "Cliente Nuevo"
	req.OverrideEmail = &override

	result, err := svc.SendRenewalNotice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@example.com", result.Recipient)
	require.Len(t, mail.sent, 1)

	// The directory learned the override address.
	learned, err := clients.LookupEmail("Cliente Nuevo")
	require.NoError(t, err)
	assert.Equal(t, "nuevo@example.com", learned)
}

func TestSendRenewalNotice_InvalidOverrideAddress(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	override := "not-an-address"
	req := noticeRequest()
	req.OverrideEmail = &override

	_, err := svc.SendRenewalNotice(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalid)
	assert.Empty(t, mail.sent)
}

func TestSendRenewalNotice_FileAttachment(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	caseFile := filepath.Join(t.TempDir(), "expediente.pdf")
	require.NoError(t, os.WriteFile(caseFile, []byte("pdf"), 0o644))

	req := noticeRequest()
	req.CaseFile = &caseFile
	_, err := svc.SendRenewalNotice(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{caseFile}, mail.sent[0].Attachments)
}

func TestSendRenewalNotice_DirectoryAttachmentsSkipHiddenAndNested(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cotizacion.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "caratula.pdf"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".oculto"), []byte("c"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "anexos"), 0o755))

	req := noticeRequest()
	req.CaseFile = &dir
	_, err := svc.SendRenewalNotice(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	got := mail.sent[0].Attachments
	assert.Len(t, got, 2)
	for _, path := range got {
		name := filepath.Base(path)
		assert.False(t, strings.HasPrefix(name, "."))
		assert.NotEqual(t, "anexos", name)
	}
}

func TestSendRenewalNotice_URLBecomesBodyLink(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	url := "https://drive.example.com/expedientes/500"
	req := noticeRequest()
	req.CaseFile = &url
	_, err := svc.SendRenewalNotice(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Empty(t, mail.sent[0].Attachments)
	assert.Contains(t, mail.sent[0].Body, url)
}

func TestSendRenewalNotice_MissingCaseFileStillSends(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	missing := filepath.Join(t.TempDir(), "no-existe")
	req := noticeRequest()
	req.CaseFile = &missing
	_, err := svc.SendRenewalNotice(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Empty(t, mail.sent[0].Attachments)
}

func TestSendRenewalNotice_MarkerFailureDoesNotFailTheSend(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)

	req := noticeRequest()
	req.PolicyNumber = "999" // not in the ledger, so the marker update fails

	result, err := svc.SendRenewalNotice(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.MarkerSet)
	require.Len(t, mail.sent, 1)
}

func TestSendRenewalNotice_MailerFailure(t *testing.T) {
	svc, mail, _ := newNotifyFixture(t)
	mail.err = errors.New("smtp unreachable")

	_, err := svc.SendRenewalNotice(context.Background(), noticeRequest())
	require.Error(t, err)
}
