package tasks

import (
	"crypto/tls"
	"time"

	"github.com/devteams/devteams-server/project-service/config"
	mail "github.com/xhit/go-simple-mail/v2"
)

const (
	welcomeSubject = "Welcome to {{app}}, {{user.first_name}}"
	welcomeBody    = "<p>Hi {{user.first_name}},</p><p>your account <b>{{user.username}}</b> is ready.</p>"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SmtpMailer struct {
	server *mail.SMTPServer
	from   string
}

// ProvideMailer returns nil when no SMTP host is configured, which turns the
// welcome mail off.
func ProvideMailer(config *config.Config) Mailer {
	if len(config.EmailConfig.SmtpHost) == 0 {
		return nil
	}

	server := mail.NewSMTPClient()
	server.Host = config.EmailConfig.SmtpHost
	server.Port = config.EmailConfig.SmtpPort
	server.Username = config.EmailConfig.SmtpUser
	server.Password = config.EmailConfig.SmtpPassword
	server.Encryption = mail.EncryptionSTARTTLS
	server.TLSConfig = &tls.Config{InsecureSkipVerify: config.EmailConfig.SmtpSkipInsecure}
	server.SendTimeout = 10 * time.Second
	server.ConnectTimeout = 10 * time.Second

	from := config.EmailConfig.From
	if len(from) == 0 {
		from = config.EmailConfig.SmtpUser
	}

	return &SmtpMailer{server: server, from: from}
}

func (m *SmtpMailer) Send(to, subject, body string) error {
	email := mail.NewMSG()
	email.SetFrom(m.from).AddTo(to).SetSubject(subject).SetBody(mail.TextHTML, body)

	if email.Error != nil {
		return email.Error
	}

	client, err := m.server.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	return email.Send(client)
}
