package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: CampusLink <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

var verifyTmpl = template.Must(template.New("verify").Parse(`
<p>Welcome to CampusLink!</p>
<p>Your verification code is <strong>{{.Code}}</strong>.</p>
<p>Enter it on the verification page to activate your account.</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>A password reset was requested for your CampusLink account.</p>
<p>Your reset code is <strong>{{.Code}}</strong>. Ignore this email if this wasn't you.</p>
`))

func (s *MailService) render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute mail template: %w", err)
	}
	return buf.String(), nil
}

func (s *MailService) SendVerificationEmail(email, code string) {
	body, err := s.render(verifyTmpl, map[string]string{"Code": code})
	if err != nil {
		log.Printf("Error rendering verification email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "Welcome to CampusLink, verify your email", body)
}

func (s *MailService) SendPasswordResetEmail(email, code string) {
	body, err := s.render(resetTmpl, map[string]string{"Code": code})
	if err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "CampusLink password reset request", body)
}
