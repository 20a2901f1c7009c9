package pkg

import (
	"bytes"
	"errors"

	"dronedesk"

	gomail "github.com/wneessen/go-mail"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

func AttachmentFromCSV(filename string, csvData string) Attachment {
	return Attachment{
		Filename:    filename,
		ContentType: "text/csv",
		Data:        []byte(csvData),
	}
}

type EmailMessage struct {
	To          []string
	CC          []string
	Subject     string
	Body        string
	IsHTML      bool
	Attachments []Attachment
}

// SendEmail delivers a message through the configured SMTP relay. When SMTP
// is disabled it logs and succeeds, so callers can fire-and-forget.
func SendEmail(msg EmailMessage) error {
	cfg := dronedesk.GetConfig()
	if !cfg.SMTPConfig.Enabled {
		dronedesk.Logger.Debug().Strs("to", msg.To).Str("subject", msg.Subject).Msg("SMTP disabled, dropping email")
		return nil
	}
	if len(msg.To) == 0 {
		return errors.New("email has no recipients")
	}

	m := gomail.NewMsg()
	if err := m.From(cfg.SMTPConfig.From); err != nil {
		return err
	}
	if err := m.To(msg.To...); err != nil {
		return err
	}
	if len(msg.CC) > 0 {
		if err := m.Cc(msg.CC...); err != nil {
			return err
		}
	}
	m.Subject(msg.Subject)
	if msg.IsHTML {
		m.SetBodyString(gomail.TypeTextHTML, msg.Body)
	} else {
		m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	}
	for _, att := range msg.Attachments {
		m.AttachReadSeeker(att.Filename, bytes.NewReader(att.Data))
	}

	client, err := gomail.NewClient(cfg.SMTPConfig.Host,
		gomail.WithPort(cfg.SMTPConfig.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPConfig.Username),
		gomail.WithPassword(cfg.SMTPConfig.Password),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(m)
}
