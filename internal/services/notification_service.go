// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/makaohomes/makao-backend/internal/config"
	"github.com/makaohomes/makao-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

// NotifyNewInquiry emails the office inbox when a visitor submits an
// inquiry. propertyTitle is empty for general inquiries.
func (s *NotificationService) NotifyNewInquiry(inquiry *models.Inquiry, propertyTitle string) error {
	subject := "New Inquiry - Makao Homes"
	if propertyTitle != "" {
		subject = "New Inquiry - " + propertyTitle
	}

	data := map[string]interface{}{
		"Name":          inquiry.Name,
		"Email":         inquiry.Email,
		"Phone":         inquiry.Phone,
		"Message":       inquiry.Message,
		"PropertyTitle": propertyTitle,
		"AdminURL":      fmt.Sprintf("%s/admin/inquiries/%s", s.config.Frontend.BaseURL, inquiry.ID),
	}

	body, err := s.renderTemplate(s.getEmailTemplate("inquiry").Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(s.config.Email.FromEmail, subject, body)
}

// SendInquiryReply emails the person who submitted an inquiry.
func (s *NotificationService) SendInquiryReply(inquiry *models.Inquiry, reply string) error {
	data := map[string]interface{}{
		"Name":  inquiry.Name,
		"Reply": reply,
	}

	body, err := s.renderTemplate(s.getEmailTemplate("inquiry_reply").Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(inquiry.Email, "Re: Your Inquiry - Makao Homes", body)
}

// SendPasswordResetEmail sends a reset link built from the frontend
// base URL.
func (s *NotificationService) SendPasswordResetEmail(user *models.User, resetToken string) error {
	data := map[string]interface{}{
		"Name":      user.Name,
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, resetToken),
		"ExpiresIn": "1 hour",
	}

	body, err := s.renderTemplate(s.getEmailTemplate("password_reset").Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, "Password Reset - Makao Homes", body)
}

// WhatsAppLink builds a wa.me link for the office line, prefilled with
// a message about the given property.
func (s *NotificationService) WhatsAppLink(propertyTitle string) string {
	phone := strings.TrimLeft(s.config.WhatsApp.PhoneNumber, "+")
	message := "Hello, I am interested in your listings."
	if propertyTitle != "" {
		message = fmt.Sprintf("Hello, I am interested in %q. Is it still available?", propertyTitle)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	from := fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"inquiry": {
			Body: `<h2>New Inquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
{{if .PropertyTitle}}<p><strong>Property:</strong> {{.PropertyTitle}}</p>{{end}}
<p>{{.Message}}</p>
<p><a href="{{.AdminURL}}">View in dashboard</a></p>`,
		},
		"inquiry_reply": {
			Body: `<p>Hi {{.Name}},</p>
<p>{{.Reply}}</p>
<p>Best regards,<br>Makao Homes</p>`,
		},
		"password_reset": {
			Body: `<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in {{.ExpiresIn}}.</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>`,
		},
	}

	if tmpl, ok := templates[templateType]; ok {
		return tmpl
	}
	return EmailTemplate{Body: "{{.Message}}"}
}
