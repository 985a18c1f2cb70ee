package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"bookstore/internal/httpx"
)

type ContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type CartItem struct {
	Title            string  `json:"title"`
	SelectedLanguage string  `json:"selectedLanguage"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
}

type ClientInfo struct {
	FirstName      string `json:"prenom"`
	LastName       string `json:"nom"`
	Phone          string `json:"phone"`
	DeliveryMethod string `json:"deliveryMethod"`
	Wilaya         string `json:"wilaya"`
	Commune        string `json:"commune"`
	Address        string `json:"adresse"`
}

type OrderRequest struct {
	CartItems    []CartItem `json:"cartItems"`
	ClientInfo   ClientInfo `json:"clientInfo"`
	Subtotal     float64    `json:"subtotal"`
	ShippingCost float64    `json:"shippingCost"`
	Total        float64    `json:"total"`
}

var contactTmpl = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="text-align: center;">Contact page</h2>
  <p><strong>From:</strong> {{.FirstName}} {{.LastName}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <h3>Message</h3>
  <p>{{.Message}}</p>
</div>`))

var orderTmpl = template.Must(template.New("order").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h2 style="text-align: center;">New order</h2>
  <h3>Client</h3>
  <p>{{.ClientInfo.FirstName}} {{.ClientInfo.LastName}}, {{.ClientInfo.Phone}}</p>
  <p>{{.ClientInfo.DeliveryMethod}} — {{.ClientInfo.Wilaya}}, {{.ClientInfo.Commune}}, {{.ClientInfo.Address}}</p>
  <h3>Items</h3>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><th>Title</th><th>Language</th><th>Quantity</th><th>Price</th></tr>
    {{range .CartItems}}<tr><td>{{.Title}}</td><td>{{.SelectedLanguage}}</td><td>{{.Quantity}}</td><td>{{.Price}} Da</td></tr>
    {{end}}
  </table>
  <p><strong>Subtotal:</strong> {{.Subtotal}} Da</p>
  <p><strong>Shipping:</strong> {{.ShippingCost}} Da</p>
  <p><strong>Total:</strong> {{.Total}} Da</p>
</div>`))

type HTTPHandler struct {
	sender Sender
	to     string
}

// NewHTTPHandler wires the mail sender and the store address that
// receives every notification.
func NewHTTPHandler(sender Sender, to string) *HTTPHandler {
	return &HTTPHandler{sender: sender, to: to}
}

// Contact handles POST /send
func (h *HTTPHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	msg := Message{
		FromName: fmt.Sprintf("%s %s", req.FirstName, req.LastName),
		ReplyTo:  req.Email,
		To:       h.to,
		Subject:  req.Subject,
		HTML:     body.String(),
	}
	if err := h.sender.Send(msg); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "SEND_FAILED", "Error sending email", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, map[string]string{"message": "Email sent successfully"}, nil)
}

// Order handles POST /api/send-email
func (h *HTTPHandler) Order(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	var body bytes.Buffer
	if err := orderTmpl.Execute(&body, req); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	msg := Message{
		FromName: fmt.Sprintf("%s %s", req.ClientInfo.FirstName, req.ClientInfo.LastName),
		To:       h.to,
		Subject:  fmt.Sprintf("Order from %s %s", req.ClientInfo.FirstName, req.ClientInfo.LastName),
		HTML:     body.String(),
	}
	if err := h.sender.Send(msg); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "SEND_FAILED", "Error sending email", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, map[string]string{"message": "Email sent successfully"}, nil)
}
