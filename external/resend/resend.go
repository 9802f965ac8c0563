package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"GearGodAPI/internal/model"

	"github.com/pkg/errors"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key not set")
	}

	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func orderConfirmationHTML(o *model.OrderDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(o.FirstName))
	fmt.Fprintf(&b, "<p>Thanks for your order #%d. We will let you know when it ships.</p>", o.OrderID)
	b.WriteString("<table><tr><th>Product</th><th>Qty</th><th>Subtotal</th></tr>")
	for _, it := range o.Items {
		name := it.ProductName
		if name == "" {
			name = fmt.Sprintf("Product #%d", it.ProductID)
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>", html.EscapeString(name), it.Quantity, it.Subtotal)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p><strong>Total: %.2f</strong></p>", o.TotalAmount)
	fmt.Fprintf(&b, "<p>Shipping to: %s</p>", html.EscapeString(o.ShippingAddress))
	return b.String()
}

func (m *ResendMailer) SendOrderConfirmation(
	ctx context.Context,
	toEmail string,
	o *model.OrderDetail,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your GearGod order #%d", o.OrderID),
		HTML:    orderConfirmationHTML(o),
	}

	b, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode email")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send email")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.Errorf("failed to send order confirmation: %s", buf.String())
	}

	return nil
}
