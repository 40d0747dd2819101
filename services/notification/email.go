package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"adhhak/config"
	"adhhak/models"
)

// SMTPNotificationService emails the dentist about new bookings. When no
// mail password is configured the service stays disabled and every send
// is a silent no-op; an unconfigured mailbox is not an error.
type SMTPNotificationService struct {
	host     string
	port     int
	from     string
	password string
	to       string

	clinicName     string
	clinicLocation string
	durationHours  int

	enabled bool
	logger  *zap.Logger
}

func NewSMTPNotificationService(cfg config.Config, logger *zap.Logger) *SMTPNotificationService {
	s := &SMTPNotificationService{
		host:           cfg.EmailHost,
		port:           cfg.EmailPort,
		from:           cfg.EmailUser,
		password:       cfg.EmailPassword,
		to:             cfg.DentistEmail,
		clinicName:     cfg.ClinicName,
		clinicLocation: cfg.ClinicLocation,
		durationHours:  cfg.AppointmentDurationHours,
		logger:         logger,
	}
	s.enabled = strings.TrimSpace(s.password) != "" && s.from != ""
	if !s.enabled {
		logger.Warn("EMAIL_PASSWORD not set, booking notification emails are disabled")
	}
	return s
}

// SendBookingNotification renders and sends the appointment email over
// STARTTLS SMTP.
func (s *SMTPNotificationService) SendBookingNotification(ctx context.Context, req models.BookingRequest, eventLink string) error {
	if !s.enabled {
		s.logger.Info("Notification email skipped, mail sending not configured")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &SendError{Err: err}
	}

	msg, err := s.buildMessage(req, eventLink)
	if err != nil {
		return &SendError{Err: err}
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{s.to}, msg); err != nil {
		return &SendError{Err: err}
	}

	s.logger.Info("Notification email sent", zap.String("to", s.to))
	return nil
}

var htmlBody = template.Must(template.New("booking").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>📅 Nouveau Rendez-vous</h1>
    <h2>Détails du Rendez-vous</h2>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Horaire:</strong> {{.Time}}</p>
    <p><strong>Durée:</strong> {{.Duration}} heure(s)</p>
    <p><strong>Lieu:</strong> {{.Location}}</p>
    <h2>Informations Client</h2>
    <p><strong>Nom:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Téléphone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>
    {{if .Message}}<p><strong>Message:</strong> {{.Message}}</p>{{end}}
    <p><a href="{{.EventLink}}">Voir dans Google Calendar</a></p>
    <p style="color: #666; font-size: 12px;">
      Cet email a été envoyé automatiquement par le système de réservation {{.ClinicName}}.<br>
      Le rendez-vous a été automatiquement ajouté à votre calendrier Google.
    </p>
  </div>
</body>
</html>
`))

type mailData struct {
	Date       string
	Time       string
	Duration   int
	Location   string
	Name       string
	Email      string
	Phone      string
	Message    string
	EventLink  string
	ClinicName string
}

func (s *SMTPNotificationService) buildMessage(req models.BookingRequest, eventLink string) ([]byte, error) {
	data := mailData{
		Date:       formatFrenchDate(req.Date),
		Time:       req.Time,
		Duration:   s.durationHours,
		Location:   s.clinicLocation,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		EventLink:  eventLink,
		ClinicName: s.clinicName,
	}

	var html bytes.Buffer
	if err := htmlBody.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render mail body: %w", err)
	}

	var plain bytes.Buffer
	fmt.Fprintf(&plain, "Nouveau Rendez-vous - %s\r\n\r\n", data.ClinicName)
	fmt.Fprintf(&plain, "Date: %s\r\nHoraire: %s\r\nDurée: %d heure(s)\r\nLieu: %s\r\n\r\n",
		data.Date, data.Time, data.Duration, data.Location)
	fmt.Fprintf(&plain, "Nom: %s\r\nEmail: %s\r\nTéléphone: %s\r\n", data.Name, data.Email, data.Phone)
	if data.Message != "" {
		fmt.Fprintf(&plain, "Message: %s\r\n", data.Message)
	}
	fmt.Fprintf(&plain, "\r\nVoir dans Google Calendar: %s\r\n", data.EventLink)

	subject := fmt.Sprintf("🔔 Nouveau rendez-vous - %s - %s à %s", data.Name, data.Date, data.Time)

	var msg bytes.Buffer
	alt := multipart.NewWriter(&msg)

	fmt.Fprintf(&msg, "From: %s <%s>\r\n",
		mime.QEncoding.Encode("utf-8", fmt.Sprintf("%s - Système de réservation", s.clinicName)), s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", s.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", alt.Boundary())

	// Plain part first so clients fall back to it, HTML preferred.
	textPart, err := alt.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write(plain.Bytes()); err != nil {
		return nil, err
	}
	htmlPart, err := alt.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=utf-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write(html.Bytes()); err != nil {
		return nil, err
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}

	return msg.Bytes(), nil
}

var (
	frenchDays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

	frenchMonths = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
)

// formatFrenchDate renders "2026-03-03" as "mardi 3 mars 2026". A date
// that does not parse (already rejected upstream) passes through as-is.
func formatFrenchDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d %s %d", frenchDays[d.Weekday()], d.Day(), frenchMonths[d.Month()-1], d.Year())
}
