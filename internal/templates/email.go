// Package templates renders the HTML bodies of outgoing emails.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"

	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"lineTotal": func(i entity.OrderItem) string {
		return i.BaseAmount.Add(i.ShippingCharge).StringFixed(2)
	},
}

var verifyTmpl = template.Must(template.New("verify").Parse(`<table cellspacing="0" cellpadding="0" style="margin: 0 auto;">
	<tr><td><h5>Verify your email address. please click the link below</h5></td></tr>
	<tr>
		<td align="center" style="padding: 1.3rem 1.4rem; border-radius: 4px;">
			<a href="{{.Link}}" target="_blank"
				style="font-weight: bold; font-family: Arial, sans-serif; color: #FFFFFF; text-decoration: none; display: block; background-color: hotpink; border-radius: 4px; padding: 0.3rem 0.8rem;">
				Click Here To Verify Email
			</a>
		</td>
	</tr>
	<tr><td align="center"><p>Or use this code: <b>{{.Code}}</b></p></td></tr>
	<tr><td align="center"><i>The code expires at {{.ExpiresAt}}</i></td></tr>
</table>`))

var securityTmpl = template.Must(template.New("security").Parse(`<div style="text-align: center">
	<h3>Password reset request</h3>
	<p>Your security code is <b>{{.Code}}</b></p>
	<p>It expires in {{.Minutes}} minutes. Ignore this email if you did not ask for it.</p>
</div>`))

var buyerTmpl = template.Must(template.New("buyer").Funcs(funcs).Parse(`<div>
	<table style="padding: 5px 2px; border: 1px solid #777; width: 100%">
		<caption style="padding: 4px; background-color: black; color: white">Order Details:</caption>
		<thead>
			<tr>
				<th style="border: 1px solid #777">No.</th>
				<th style="border: 1px solid #777">Product</th>
				<th style="border: 1px solid #777">Price</th>
				<th style="border: 1px solid #777">Quantity</th>
			</tr>
		</thead>
		<tbody>
		{{- range $i, $item := .Items}}
			<tr>
				<td style="border: 1px solid #777">{{inc $i}}</td>
				<td style="border: 1px solid #777">{{$item.Title}}</td>
				<td style="border: 1px solid #777">$ {{lineTotal $item}}</td>
				<td style="border: 1px solid #777">{{$item.Quantity}} Pcs</td>
			</tr>
		{{- end}}
		</tbody>
		<tfoot>
			<tr>
				<th colspan="100%">
					<b style="width: 100%; text-align: center; background-color: black; color: white">Total amount: {{money .Total}} {{.Currency}}</b>
				</th>
			</tr>
		</tfoot>
	</table>
	<p>Order ID: <b>{{.OrderID}}</b></p>
</div>`))

var sellerTmpl = template.Must(template.New("seller").Parse(`<div>
	<h3 style="text-align: center">You have new order from {{.CustomerEmail}}</h3>
	<table style="border: 1px solid #777; width: 100%">
		<caption style="padding: 4px; background-color: black; color: white">Order Details:</caption>
		<thead>
			<tr>
				<th style="border: 1px solid #777">Product</th>
				<th style="border: 1px solid #777">Quantity</th>
				<th style="border: 1px solid #777">SKU</th>
			</tr>
		</thead>
		<tbody>
		{{- range .Items}}
			<tr>
				<td style="border: 1px solid #777">{{.Title}}</td>
				<td style="border: 1px solid #777">{{.Quantity}}</td>
				<td style="border: 1px solid #777">{{.SKU}}</td>
			</tr>
		{{- end}}
		</tbody>
		<tfoot>
			<tr>
				<th colspan="100%" align="center">
					<p style="width: 100%; text-align: center; background-color: black; color: white">
						Order ID: <b>{{.OrderID}}</b><br/>
						{{- range .Items}}
						Tracking ID: <b>{{.TrackingID}}</b><br/>
						{{- end}}
						<i>Order At {{.OrderedAt}}</i>
					</p>
				</th>
			</tr>
		</tfoot>
	</table>
</div>`))

var sellerApprovedTmpl = template.Must(template.New("seller-approved").Parse(`<div style="text-align: center">
	<h3>Welcome aboard{{if .Name}}, {{.Name}}{{end}}</h3>
	<p>Your seller account {{if .Store}}for <b>{{.Store}}</b> {{end}}has been verified.</p>
	<p>You can now submit listings from your dashboard.</p>
</div>`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// VerificationLink points at the account verification endpoint.
func VerificationLink(backendURL, code, userUUID string) string {
	q := url.Values{}
	q.Set("token", code)
	q.Set("mailer", userUUID)
	return strings.TrimRight(backendURL, "/") + "/api/v1/auth/verify-register-user?" + q.Encode()
}

func VerifyEmail(link, code string, expiresAt time.Time) (string, error) {
	return render(verifyTmpl, struct {
		Link      string
		Code      string
		ExpiresAt string
	}{link, code, expiresAt.UTC().Format(time.RFC1123)})
}

func SecurityCode(code string, minutes int) (string, error) {
	return render(securityTmpl, struct {
		Code    string
		Minutes int
	}{code, minutes})
}

// BuyerOrder lists every line of the order with its price including shipping.
func BuyerOrder(order *entity.Order, currency string) (string, error) {
	return render(buyerTmpl, struct {
		OrderID  string
		Items    []entity.OrderItem
		Total    decimal.Decimal
		Currency string
	}{order.OrderID, order.Items, order.TotalAmount, strings.ToUpper(currency)})
}

// SellerOrder notifies one seller about the lines of the order they supply.
func SellerOrder(order *entity.Order, items []entity.OrderItem) (string, error) {
	return render(sellerTmpl, struct {
		CustomerEmail string
		OrderID       string
		Items         []entity.OrderItem
		OrderedAt     string
	}{order.CustomerEmail, order.OrderID, items, order.CreatedAt.UTC().Format("15:04, 02 Jan 2006")})
}

func SellerApproved(name, store string) (string, error) {
	return render(sellerApprovedTmpl, struct {
		Name  string
		Store string
	}{name, store})
}
