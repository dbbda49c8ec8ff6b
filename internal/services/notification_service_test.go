// internal/services/notification_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/makaohomes/makao-backend/internal/config"
)

func newTestNotifier() *NotificationService {
	cfg := &config.Config{}
	cfg.WhatsApp.PhoneNumber = "254700000000"
	cfg.Frontend.BaseURL = "https://makaohomes.co.ke"
	return NewNotificationService(cfg)
}

func TestWhatsAppLinkForProperty(t *testing.T) {
	s := newTestNotifier()

	link := s.WhatsAppLink("Karen 4-Bed Villa")
	assert.Contains(t, link, "https://wa.me/254700000000?text=")
	assert.Contains(t, link, "Karen+4-Bed+Villa")
}

func TestWhatsAppLinkGeneric(t *testing.T) {
	s := newTestNotifier()

	link := s.WhatsAppLink("")
	assert.Contains(t, link, "https://wa.me/254700000000?text=")
	assert.Contains(t, link, "interested")
}

func TestWhatsAppLinkStripsPlus(t *testing.T) {
	cfg := &config.Config{}
	cfg.WhatsApp.PhoneNumber = "+254711222333"
	s := NewNotificationService(cfg)

	assert.Contains(t, s.WhatsAppLink(""), "wa.me/254711222333")
}

func TestRenderTemplate(t *testing.T) {
	s := newTestNotifier()

	body, err := s.renderTemplate("<p>Hi {{.Name}}</p>", map[string]interface{}{"Name": "Wanjiku"})
	assert.NoError(t, err)
	assert.Equal(t, "<p>Hi Wanjiku</p>", body)
}
