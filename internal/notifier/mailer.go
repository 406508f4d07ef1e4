package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/nortia/backoffice/internal/model"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

type MailerConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromAddress  string
	OperatorAddr string
}

// Mailer delivers two transactional messages per order: an operator
// notification and a customer confirmation. Delivery failures are logged
// and swallowed.
type Mailer struct {
	dialer *gomail.Dialer
	cfg    MailerConfig
	logger *zap.Logger
}

func NewMailer(cfg MailerConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
		logger: log,
	}
}

func (m *Mailer) OrderCreated(ctx context.Context, order *model.Order) {
	subject := fmt.Sprintf("Order inquiry %s received", order.ID)
	body := renderOrderBody(order)

	if m.cfg.OperatorAddr != "" {
		m.send(m.cfg.OperatorAddr, "New order inquiry from "+order.CustomerName, body, order.ID)
	}
	m.send(order.CustomerEmail, subject, body, order.ID)
}

func (m *Mailer) OrderStatusChanged(ctx context.Context, order *model.Order, prev model.OrderStatus) {
	subject := fmt.Sprintf("Order %s is now %s", order.ID, order.Status)
	m.send(order.CustomerEmail, subject, renderOrderBody(order), order.ID)
}

func (m *Mailer) send(to, subject, body, orderID string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send order email",
			zap.String("order_id", orderID),
			zap.String("to", to),
			zap.Error(err),
		)
	}
}

func renderOrderBody(order *model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s (%s)\n\n", order.ID, order.Status)
	for _, item := range order.Items {
		name := item.ProductName
		if item.VariantName != nil {
			name += " / " + *item.VariantName
		}
		fmt.Fprintf(&b, "%d x %s @ %s\n", item.Quantity, name, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\n", order.Total.StringFixed(2), order.Currency)
	return b.String()
}
