package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

type expiryDigestData struct {
	Alerts []entity.ExpiryAlert
}

var digestTemplate = template.Must(template.New("expiry_digest").Parse(`<html>
<body>
<h2>Stock expiring soon</h2>
<p>{{len .Alerts}} sale(s) still have unsold units close to their expiry date:</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Trainer</th><th>Buyer</th><th>Unsold units</th><th>Expiry date</th><th>Days left</th></tr>
{{range .Alerts}}<tr>
<td>{{.TrainerName}}</td>
<td>{{.BuyerName}}</td>
<td>{{.UnsoldUnits}}</td>
<td>{{.ExpiryDate}}</td>
<td>{{.DaysUntilExpiry}}</td>
</tr>
{{end}}</table>
</body>
</html>`))

// SendExpiryDigest emails the operator a summary of sales whose unsold
// stock is about to expire.
func (s *EmailSender) SendExpiryDigest(to string, alerts []entity.ExpiryAlert) error {
	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, expiryDigestData{Alerts: alerts}); err != nil {
		return fmt.Errorf("render digest template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Expiry alert: %d sale(s) need attention", len(alerts)))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send digest email: %w", err)
	}
	return nil
}
