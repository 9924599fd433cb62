package mailer

import (
	"context"
	"fmt"
	"net/http"

	"Yatube/api/config"
	"Yatube/api/models"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer renders notification emails with hermes and delivers them
// through SendGrid. Without an API key it does nothing.
type Mailer struct {
	From    string
	SiteURL string

	theme hermes.Hermes
	send  func(ctx context.Context, msg *mail.SGMailV3) error
}

func New(cfg config.Config) *Mailer {
	m := &Mailer{
		From:    cfg.MailFrom,
		SiteURL: cfg.SiteURL,
		theme: hermes.Hermes{
			Product: hermes.Product{
				Name:      "Yatube",
				Link:      cfg.SiteURL,
				Copyright: "Yatube",
			},
		},
	}
	if cfg.SendgridAPIKey != "" {
		client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
		m.send = func(ctx context.Context, msg *mail.SGMailV3) error {
			resp, err := client.SendWithContext(ctx, msg)
			if err != nil {
				return err
			}
			if resp.StatusCode >= http.StatusBadRequest {
				return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
			}
			return nil
		}
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.send != nil
}

// NewFollower tells author that follower subscribed to their posts.
func (m *Mailer) NewFollower(ctx context.Context, author, follower *models.User) error {
	if !m.Enabled() || author.Email == "" {
		return nil
	}
	msg, err := m.newFollowerMessage(author, follower)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *Mailer) newFollowerMessage(author, follower *models.User) (*mail.SGMailV3, error) {
	email := hermes.Email{
		Body: hermes.Body{
			Name: author.Username,
			Intros: []string{
				fmt.Sprintf("%s is now following your posts.", follower.Username),
			},
			Actions: []hermes.Action{
				{
					Instructions: "See who they are:",
					Button: hermes.Button{
						Text: "Open profile",
						Link: fmt.Sprintf("%s/profile/%s/", m.SiteURL, follower.Username),
					},
				},
			},
		},
	}

	html, err := m.theme.GenerateHTML(email)
	if err != nil {
		return nil, err
	}
	text, err := m.theme.GeneratePlainText(email)
	if err != nil {
		return nil, err
	}

	from := mail.NewEmail("Yatube", m.From)
	to := mail.NewEmail(author.Username, author.Email)
	subject := fmt.Sprintf("%s started following you", follower.Username)
	return mail.NewSingleEmail(from, subject, to, text, html), nil
}
