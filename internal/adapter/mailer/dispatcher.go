package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/pkg/format"
)

// ErrNotConfigured indicates no SMTP transport was configured.
var ErrNotConfigured = errors.New("mail transport not configured")

// Dispatcher sends a delivery note for a committed order.
type Dispatcher interface {
	Dispatch(ctx context.Context, order *model.ComposedOrder, document []byte) (*model.DispatchReceipt, error)
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPDispatcher implements Dispatcher over an SMTP relay.
type SMTPDispatcher struct {
	sender    sender
	from      string
	storeName string
	logger    *slog.Logger
	now       func() time.Time
}

var bodyTemplate = template.Must(template.New("delivery_note").Parse(`<html>
<body>
<h2>{{.Store}}</h2>
<p>Hello {{.Name}},</p>
<p>Your order has been registered. The delivery note is attached to this message.</p>
<table>
<tr><td><strong>Order</strong></td><td>#{{.OrderID}}</td></tr>
<tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
<tr><td><strong>Total</strong></td><td>{{.Total}}</td></tr>
</table>
<h3>Shipping address</h3>
<p>{{.Name}}<br>{{.Address}}<br>{{.City}}<br>{{.Email}}</p>
<h3>Products</h3>
<ul>
{{range .Lines}}<li>{{.Quantity}} x {{.Name}} ({{.Color}})</li>
{{end}}</ul>
<p>Thank you for shopping at {{.Store}}.</p>
</body>
</html>`))

type bodyData struct {
	Store   string
	OrderID int64
	Date    string
	Total   string
	Name    string
	Address string
	City    string
	Email   string
	Lines   []bodyLine
}

type bodyLine struct {
	Name     string
	Color    string
	Quantity int
}

// NewSMTPDispatcher builds a dispatcher from mail settings. A configuration
// without host or sender yields a dispatcher that fails with ErrNotConfigured.
func NewSMTPDispatcher(cfg config.MailConfig, storeName string, logger *slog.Logger) (*SMTPDispatcher, error) {
	d := &SMTPDispatcher{
		from:      cfg.From,
		storeName: storeName,
		logger:    logger,
		now:       time.Now,
	}
	if !cfg.Enabled() {
		logger.Warn("mail transport disabled, delivery notes will not be sent",
			slog.String("provider", cfg.Provider))
		return d, nil
	}

	opts := []mail.Option{mail.WithPort(cfg.Port), mail.WithTimeout(cfg.Timeout)}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	d.sender = client
	return d, nil
}

// Subject returns the mail subject for an order.
func Subject(orderID int64, storeName string) string {
	return fmt.Sprintf("Delivery note for order #%d - %s", orderID, storeName)
}

// AttachmentName returns the file name of the attached delivery note.
func AttachmentName(orderID int64) string {
	return format.DocumentFileName(orderID)
}

// Dispatch sends the delivery note to the order owner.
func (d *SMTPDispatcher) Dispatch(ctx context.Context, order *model.ComposedOrder, document []byte) (*model.DispatchReceipt, error) {
	recipient := order.RecipientEmail()
	if recipient == "" {
		return nil, domainErrors.ErrMissingEmail
	}
	if d.sender == nil {
		return nil, ErrNotConfigured
	}

	msg, err := d.Compose(order, document)
	if err != nil {
		return nil, err
	}
	if err := d.sender.DialAndSendWithContext(ctx, msg); err != nil {
		d.logger.Error("delivery note not sent",
			slog.Int64("order_id", order.ID),
			slog.String("recipient", recipient),
			slog.Any("error", err))
		return nil, fmt.Errorf("send delivery note for order %d: %w", order.ID, err)
	}

	d.logger.Info("delivery note sent", slog.Int64("order_id", order.ID), slog.String("recipient", recipient))
	return &model.DispatchReceipt{
		OrderID:    order.ID,
		Recipient:  recipient,
		Subject:    Subject(order.ID, d.storeName),
		Attachment: AttachmentName(order.ID),
		SentAt:     d.now(),
	}, nil
}

// Compose builds the message without sending it.
func (d *SMTPDispatcher) Compose(order *model.ComposedOrder, document []byte) (*mail.Msg, error) {
	recipient := order.RecipientEmail()
	if recipient == "" {
		return nil, domainErrors.ErrMissingEmail
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, d.bodyData(order)); err != nil {
		return nil, fmt.Errorf("render mail body: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(Subject(order.ID, d.storeName))
	msg.SetBodyString(mail.TypeTextHTML, body.String())
	if err := msg.AttachReader(AttachmentName(order.ID), bytes.NewReader(document),
		mail.WithFileContentType(mail.ContentType("application/pdf"))); err != nil {
		return nil, fmt.Errorf("attach delivery note: %w", err)
	}
	return msg, nil
}

func (d *SMTPDispatcher) bodyData(order *model.ComposedOrder) bodyData {
	owner := order.Owner
	data := bodyData{
		Store:   format.OrNA(d.storeName),
		OrderID: order.ID,
		Date:    format.Date(order.Date),
		Total:   format.Money(order.Total),
		Name:    format.OrNA(owner.Name),
		Address: format.OrNA(owner.Address),
		City:    format.CityLine(owner.City, owner.PostalCode),
		Email:   owner.Email,
		Lines:   make([]bodyLine, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		data.Lines = append(data.Lines, bodyLine{
			Name:     format.OrNA(line.DisplayName()),
			Color:    format.OrNA(line.Color),
			Quantity: line.Quantity,
		})
	}
	return data
}
