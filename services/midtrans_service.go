package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// RefundGateway starts a refund with whoever holds the money. It only has to accept the
// request; settlement happens outside this system.
type RefundGateway interface {
	Name() string
	Refund(ctx context.Context, payment models.Payment, reason string) (string, error)
}

// MidtransConfig holds Midtrans configuration
type MidtransConfig struct {
	ServerKey    string
	IsProduction bool
}

// ValidateConfig validates Midtrans configuration
func (c MidtransConfig) ValidateConfig() error {
	if c.ServerKey == "" {
		return fmt.Errorf("MIDTRANS_SERVER_KEY is not set")
	}
	if c.IsProduction && strings.HasPrefix(c.ServerKey, "SB-") {
		return fmt.Errorf("sandbox server key used with MIDTRANS_ENV=production")
	}
	return nil
}

// MidtransRefundGateway refunds QRIS/card payments through the Midtrans Core API.
type MidtransRefundGateway struct {
	client coreapi.Client
}

func NewMidtransRefundGateway(cfg MidtransConfig) (*MidtransRefundGateway, error) {
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	env := midtrans.Sandbox
	if cfg.IsProduction {
		env = midtrans.Production
	}
	g := &MidtransRefundGateway{}
	g.client.New(cfg.ServerKey, env)
	return g, nil
}

func (g *MidtransRefundGateway) Name() string { return "midtrans" }

// Refund uses the payment's ReferenceID as the Midtrans order id.
func (g *MidtransRefundGateway) Refund(ctx context.Context, payment models.Payment, reason string) (string, error) {
	if payment.ReferenceID == "" {
		return "", fmt.Errorf("payment %d has no midtrans order id", payment.ID)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := &coreapi.RefundReq{
		RefundKey: uuid.NewString(),
		Amount:    int64(math.Round(payment.Amount)),
		Reason:    reason,
	}
	res, merr := g.client.RefundTransaction(payment.ReferenceID, req)
	if merr != nil {
		return "", fmt.Errorf("midtrans refund %s: %s", payment.ReferenceID, merr.Error())
	}
	if !strings.HasPrefix(res.StatusCode, "2") {
		return "", fmt.Errorf("midtrans refund %s: %s %s", payment.ReferenceID, res.StatusCode, res.StatusMessage)
	}

	utils.InfoLogger.WithField("payment_id", payment.ID).
		Infof("Midtrans refund accepted (key=%s)", req.RefundKey)
	return req.RefundKey, nil
}

// ManualRefundGateway is for money taken at the till: staff hand it back, so the
// request is only logged.
type ManualRefundGateway struct{}

func (ManualRefundGateway) Name() string { return "manual" }

func (ManualRefundGateway) Refund(ctx context.Context, payment models.Payment, reason string) (string, error) {
	key := "MANUAL-" + uuid.NewString()
	utils.InfoLogger.WithField("payment_id", payment.ID).
		Infof("Manual refund of Rp %s requested (%s): %s", utils.FormatCurrency(payment.Amount), key, reason)
	return key, nil
}

// NewRefundGateway picks the gateway named by PAYMENT_GATEWAY.
func NewRefundGateway(name string, cfg MidtransConfig) (RefundGateway, error) {
	switch strings.ToLower(name) {
	case "", "manual":
		return ManualRefundGateway{}, nil
	case "midtrans":
		return NewMidtransRefundGateway(cfg)
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", name)
	}
}
