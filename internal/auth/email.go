package auth

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// AppointmentMailer sends the simulator appointment confirmation. A nil
// mailer means email is not configured and the send is skipped.
type AppointmentMailer interface {
	SendAppointmentConfirmation(ctx context.Context, email, tramiteID, date, timeSlot, code string) error
}

type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewSMTPMailer(cfg SMTPConfig) AppointmentMailer {
	if strings.TrimSpace(cfg.Host) == "" || cfg.Port <= 0 || strings.TrimSpace(cfg.From) == "" {
		return nil
	}
	return &SMTPMailer{
		host: strings.TrimSpace(cfg.Host),
		port: cfg.Port,
		user: strings.TrimSpace(cfg.User),
		pass: cfg.Pass,
		from: strings.TrimSpace(cfg.From),
	}
}

func (m *SMTPMailer) SendAppointmentConfirmation(ctx context.Context, email, tramiteID, date, timeSlot, code string) error {
	_ = ctx
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	subject := "Confirmación de cita - Simulador de manejo"
	body := fmt.Sprintf(
		"Su cita para el simulador de manejo quedó registrada.\n\nTrámite: %s\nFecha: %s\nHorario: %s\nCódigo de cita: %s\n\nPresente este código el día de su cita.",
		tramiteID, date, timeSlot, code,
	)
	msg := "From: " + m.from + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n\r\n" +
		body + "\r\n"

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send confirmation: %w", err)
	}
	return nil
}
