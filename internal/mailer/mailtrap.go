package mailer

import (
	"errors"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

const (
	mailtrapHost = "live.smtp.mailtrap.io"
	mailtrapPort = 587
	mailtrapUser = "api"
)

type mailtrapClient struct {
	fromEmail string
	apiKey    string
	dialer    *gomail.Dialer
}

func NewMailTrapClient(apiKey, fromEmail string) (mailtrapClient, error) {
	if apiKey == "" {
		return mailtrapClient{}, errors.New("api key is required")
	}

	return mailtrapClient{
		fromEmail: fromEmail,
		apiKey:    apiKey,
		dialer:    gomail.NewDialer(mailtrapHost, mailtrapPort, mailtrapUser, apiKey),
	}, nil
}

func (m mailtrapClient) Send(templateFile, username, email string, data any) (int, error) {
	subject, body, err := Render(templateFile, data)
	if err != nil {
		return -1, err
	}

	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.fromEmail, FromName)
	message.SetAddressHeader("To", email, username)
	message.SetHeader("Subject", subject)
	message.AddAlternative("text/html", body)

	var retryErr error
	for i := 0; i < maxRetires; i++ {
		if retryErr = m.dialer.DialAndSend(message); retryErr == nil {
			return 200, nil
		}

		// exponential backoff
		time.Sleep(time.Second * time.Duration(1<<i))
	}

	return -1, fmt.Errorf("failed to send email after %d attempts, error: %v", maxRetires, retryErr)
}
