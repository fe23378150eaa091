package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Mailer interface {
	SendEmail(ctx context.Context, email Email) error
}

type Texter interface {
	SendSMS(body string) error
}

// ContactStore persists contact form submissions. Implemented by
// database.ContactRepo.
type ContactStore interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}

var contactEmail = template.Must(template.New("contact").Parse(`<h2>New enquiry from {{.Name}}</h2>
<table>
  <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
  {{- if .Phone}}<tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>{{end}}
  {{- if .Company}}<tr><td><strong>Company</strong></td><td>{{.Company}}</td></tr>{{end}}
  {{- if .ProjectType}}<tr><td><strong>Project type</strong></td><td>{{.ProjectType}}</td></tr>{{end}}
</table>
<p style="white-space: pre-wrap">{{.Message}}</p>
`))

// ContactNotifier tells staff about a new submission by email and,
// when configured, by SMS.
type ContactNotifier struct {
	mailer     Mailer
	texter     Texter
	recipients []string
}

// NewContactNotifier builds a notifier. texter may be nil.
func NewContactNotifier(mailer Mailer, texter Texter, recipients []string) *ContactNotifier {
	return &ContactNotifier{mailer: mailer, texter: texter, recipients: recipients}
}

// NewContactNotifierFromConfig sends to CONTACT_RECIPIENTS and texts
// LEAD_ALERT_PHONES when Twilio is configured.
func NewContactNotifierFromConfig(cfg map[string]string, mailer Mailer) *ContactNotifier {
	var texter Texter
	if sms := NewSMSSenderFromConfig(cfg); sms != nil {
		texter = sms
	}
	return NewContactNotifier(mailer, texter, config.GetList(cfg, "CONTACT_RECIPIENTS"))
}

// Notify sends every configured notification and joins their errors.
func (n *ContactNotifier) Notify(ctx context.Context, s *models.ContactSubmission) error {
	var failures []error

	if n.mailer != nil && len(n.recipients) > 0 {
		var body bytes.Buffer
		if err := contactEmail.Execute(&body, s); err != nil {
			return fmt.Errorf("failed to render contact email: %w", err)
		}
		err := n.mailer.SendEmail(ctx, Email{
			Subject:    fmt.Sprintf("New website enquiry from %s", s.Name),
			HTML:       body.String(),
			ReplyTo:    s.Email,
			Recipients: n.recipients,
		})
		if err != nil {
			failures = append(failures, err)
		}
	}

	if n.texter != nil {
		if err := n.texter.SendSMS(leadAlert(s)); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func leadAlert(s *models.ContactSubmission) string {
	parts := []string{"New lead: " + s.Name}
	if s.Company != "" {
		parts = append(parts, s.Company)
	}
	if s.Phone != "" {
		parts = append(parts, s.Phone)
	} else {
		parts = append(parts, s.Email)
	}
	return strings.Join(parts, " / ")
}

// ContactService accepts public contact form submissions.
type ContactService struct {
	store    ContactStore
	notifier interface {
		Notify(ctx context.Context, s *models.ContactSubmission) error
	}
	now    func() time.Time
	logger zerolog.Logger
}

func NewContactService(store ContactStore, notifier *ContactNotifier) *ContactService {
	svc := &ContactService{
		store:  store,
		now:    models.Now,
		logger: log.With().Str("service", "contact").Logger(),
	}
	if notifier != nil {
		svc.notifier = notifier
	}
	return svc
}

// Submit validates and stores a submission, then notifies staff. A failed
// notification is logged and does not fail the submission.
func (s *ContactService) Submit(ctx context.Context, input any) (*models.ContactSubmission, error) {
	res, err := validation.Validate("contact", input)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, res.Err()
	}
	in, ok := res.Data.(*validation.ContactInput)
	if !ok {
		return nil, errs.NewInternalError("unexpected contact input type")
	}

	submission := &models.ContactSubmission{}
	in.Apply(submission)
	if err := s.store.Create(ctx, submission); err != nil {
		return nil, err
	}

	if s.notifier == nil {
		return submission, nil
	}
	if err := s.notifier.Notify(ctx, submission); err != nil {
		s.logger.Error().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to notify staff of contact submission")
		return submission, nil
	}

	at := s.now()
	if err := s.store.MarkNotified(ctx, submission.ID, at); err != nil {
		s.logger.Warn().Err(err).Str("submissionId", submission.ID.String()).Msg("Failed to mark submission notified")
		return submission, nil
	}
	submission.NotifiedAt = &at
	return submission, nil
}
