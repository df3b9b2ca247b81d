package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/knowhowcafe/auth/internal/server/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

type templateData struct {
	Name string
	Code string
	Year int
}

// subject returns the email subject line for the given OTP purpose.
func subject(purpose models.OtpPurpose) string {
	if purpose == models.OtpPurposeForgotPassword {
		return "Reset Your Password - Know How Cafe"
	}
	return "Verify Your Email - Know How Cafe"
}

// renderBody renders the HTML body for the given OTP purpose.
func renderBody(purpose models.OtpPurpose, name string, code string) (string, error) {
	tmpl := "signup_otp.gohtml"
	if purpose == models.OtpPurposeForgotPassword {
		tmpl = "reset_otp.gohtml"
	}

	if name == "" {
		name = "there"
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, tmpl, templateData{
		Name: name,
		Code: code,
		Year: time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("error rendering email template: %w", err)
	}

	return buf.String(), nil
}
