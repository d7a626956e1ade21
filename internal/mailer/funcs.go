package mailer

import (
	"text/template"

	"bookit/internal/format"
)

var funcs = template.FuncMap{
	"currency": format.Currency,
	"date":     format.Date,
}
