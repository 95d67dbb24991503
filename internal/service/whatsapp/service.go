package whatsapp

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/config"
	client "github.com/mamadbah2/farmshop/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// Notifier sends shop notifications to the manager's WhatsApp number.
type Notifier struct {
	client client.Client
	to     string
	logger *zap.Logger
}

// NewNotifier wires a notifier that always writes to cfg.ManagerID.
func NewNotifier(cfg config.WhatsAppConfig, c client.Client, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{client: c, to: cfg.ManagerID, logger: logger}
}

// Notify sends message to the manager.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if n.to == "" {
		return errors.New("no manager number configured")
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := n.client.SendTextMessage(ctx, client.SendTextMessageRequest{To: n.to, Body: message})
	if err != nil {
		n.logger.Error("whatsapp notification failed", zap.String("to", n.to), zap.Error(err))
		return err
	}

	n.logger.Info("whatsapp notification sent", zap.String("to", n.to), zap.String("message_id", resp.MessageID()))
	return nil
}
