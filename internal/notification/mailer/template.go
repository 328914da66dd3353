package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

var orderConfirmationTemplate = template.Must(template.New("orderConfirmation").Parse(
	`<div style="background:#000;color:#fff;padding:40px;border:1px solid #d4af37;">` +
		`<h1>LUMIÈRE</h1>` +
		`<p>Order Confirmed</p>` +
		`<hr>` +
		`<p>Dear {{.FirstName}},</p>` +
		`<table>{{range .Items}}<tr><td>{{.Name}}</td>` +
		`<td style="text-align: right;">{{.Quantity}} x ${{.Price}}</td></tr>{{end}}</table>` +
		`<p>Total: ${{.Total}}</p>` +
		`</div>`,
))

var consultationTemplate = template.Must(template.New("consultation").Parse(
	`<p>New request from {{.Name}} ({{.Email}})</p><p>{{.Preferences}}</p>`,
))

type OrderLine struct {
	Name     string
	Quantity int32
	Price    string
}

// OrderConfirmationSubject derives the short order reference from the last six
// characters of the order id.
func OrderConfirmationSubject(orderID string) string {
	ref := orderID
	if len(ref) > 6 {
		ref = ref[len(ref)-6:]
	}
	return fmt.Sprintf("✨ Order Confirmed: #%s", strings.ToUpper(ref))
}

func OrderConfirmationBody(firstName string, items []OrderLine, total string) (string, error) {
	var b strings.Builder
	err := orderConfirmationTemplate.Execute(&b, map[string]interface{}{
		"FirstName": firstName,
		"Items":     items,
		"Total":     total,
	})
	if err != nil {
		return "", fmt.Errorf("failed rendering order confirmation with error=%w", err)
	}
	return b.String(), nil
}

func ConsultationSubject(name string) string {
	return fmt.Sprintf("Inquiry: %s", name)
}

func ConsultationBody(name string, email string, preferences string) (string, error) {
	var b strings.Builder
	err := consultationTemplate.Execute(&b, map[string]interface{}{
		"Name":        name,
		"Email":       email,
		"Preferences": preferences,
	})
	if err != nil {
		return "", fmt.Errorf("failed rendering consultation inquiry with error=%w", err)
	}
	return b.String(), nil
}
