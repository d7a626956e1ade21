package mailer

import (
	"bytes"
	"embed"
	"text/template"
)

const (
	FromName                    = "BookIt"
	maxRetires                  = 3
	BookingConfirmationTemplate = "booking_confirmation.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}

// Render executes the "subject" and "body" blocks of a template.
func Render(templateFile string, data any) (subject, body string, err error) {
	tmpl, err := template.New(templateFile).Funcs(funcs).ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", err
	}

	s := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(s, "subject", data); err != nil {
		return "", "", err
	}

	b := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(b, "body", data); err != nil {
		return "", "", err
	}

	return s.String(), b.String(), nil
}
