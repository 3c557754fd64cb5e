package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Plauto679/taiico-crm/internal/event"
	"github.com/Plauto679/taiico-crm/internal/mailer"
	"github.com/Plauto679/taiico-crm/internal/models"
	"github.com/Plauto679/taiico-crm/internal/parse"
	"github.com/Plauto679/taiico-crm/internal/repository"
	"github.com/Plauto679/taiico-crm/internal/template"
	"github.com/Plauto679/taiico-crm/internal/utils"
)

// NotifyService sends renewal notices. The send is the primary contract;
// stamping the notification marker and publishing the audit event are best
// effort and never un-send a delivered notice.
type NotifyService struct {
	clients  *repository.ClientDirectory
	mail     mailer.Mailer
	renewals *RenewalService
	audit    *event.AuditPublisher
}

func NewNotifyService(clients *repository.ClientDirectory, mail mailer.Mailer, renewals *RenewalService, audit *event.AuditPublisher) *NotifyService {
	return &NotifyService{
		clients:  clients,
		mail:     mail,
		renewals: renewals,
		audit:    audit,
	}
}

func (s *NotifyService) SendRenewalNotice(ctx context.Context, req models.NotifyRenewalRequest) (*models.NotifyRenewalResult, error) {
	if s.mail == nil {
		return nil, fmt.Errorf("outbound mailer: %w", models.ErrConfiguration)
	}

	recipient, err := s.resolveRecipient(req)
	if err != nil {
		return nil, err
	}

	attachments, links := resolveCaseFile(req.CaseFile)

	msg := mailer.Message{
		To:          []string{recipient},
		Subject:     template.RenewalNoticeSubject(parse.Identifier(req.PolicyNumber)),
		Body:        template.RenewalNoticeTemplate(req.ClientName, parse.Identifier(req.PolicyNumber), req.CoverageEnd, links),
		Attachments: attachments,
	}
	if err := s.mail.Send(msg); err != nil {
		return nil, fmt.Errorf("send renewal notice: %w", err)
	}

	result := &models.NotifyRenewalResult{
		Recipient:    recipient,
		PolicyNumber: parse.Identifier(req.PolicyNumber),
	}

	// The notice is already delivered; a marker failure is logged, never
	// surfaced as a failed request.
	if err := s.renewals.MarkNotified(req.Carrier, req.ProductLine, req.PolicyNumber); err != nil {
		slog.Error("notice delivered but marker update failed",
			"carrier", req.Carrier, "line", req.ProductLine,
			"policy_number", req.PolicyNumber, "error", err)
	} else {
		result.MarkerSet = true
	}

	if err := s.audit.PublishNotificationSent(ctx, event.NotificationAuditEvent{
		Carrier:      req.Carrier,
		ProductLine:  req.ProductLine,
		PolicyNumber: result.PolicyNumber,
		Recipient:    recipient,
	}); err != nil {
		slog.Warn("audit event publish failed", "policy_number", result.PolicyNumber, "error", err)
	}

	return result, nil
}

// resolveRecipient picks the override address when one is supplied,
// teaching it back to the client directory, and otherwise looks the client
// up by normalized name.
func (s *NotifyService) resolveRecipient(req models.NotifyRenewalRequest) (string, error) {
	if req.OverrideEmail != nil && strings.TrimSpace(*req.OverrideEmail) != "" {
		recipient := strings.TrimSpace(*req.OverrideEmail)
		if ok, _ := utils.ValidateEmail(recipient); !ok {
			return "", fmt.Errorf("override address %q is not a valid email: %w", recipient, models.ErrInvalid)
		}
		if err := s.clients.UpsertEmail(req.ClientName, recipient); err != nil {
			slog.Warn("could not record override address in client directory",
				"client", req.ClientName, "error", err)
		}
		return recipient, nil
	}
	return s.clients.LookupEmail(req.ClientName)
}

// resolveCaseFile turns a case-file reference into attachments and body
// links. A directory contributes its regular, non-hidden top-level files;
// nested subdirectories are never followed. A URL becomes a body link. A
// missing path sends with no attachments, never a failed send.
func resolveCaseFile(ref *string) (attachments []string, links []string) {
	if ref == nil {
		return nil, nil
	}
	path := strings.TrimSpace(*ref)
	if path == "" {
		return nil, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil, []string{path}
	}

	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("case-file reference unreachable, sending without attachments",
			"path", path, "error", err)
		return nil, nil
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		slog.Warn("case-file directory unreadable, sending without attachments",
			"path", path, "error", err)
		return nil, nil
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		attachments = append(attachments, filepath.Join(path, entry.Name()))
	}
	return attachments, nil
}
