package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/features/billing/boosts/dto"
	paymentModel "estatehub_backend/internals/features/billing/payments/model"
	providerModel "estatehub_backend/internals/features/billing/providers/model"
	providerService "estatehub_backend/internals/features/billing/providers/service"
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Charge struct {
	OrderID     string
	Amount      float64
	ItemID      string
	ItemName    string
	Description string
	Customer    Customer
}

type ChargeResult struct {
	Token       string
	RedirectURL string
}

type GatewayStatus struct {
	TransactionStatus string
	FraudStatus       string
	TransactionID     string
	PaymentType       string
	GrossAmount       string
}

// Gateway is the payment provider used by boost checkout.
type Gateway interface {
	Name() string
	ClientKey() string
	CreateCharge(ctx context.Context, ch Charge) (ChargeResult, error)
	Status(ctx context.Context, orderID string) (GatewayStatus, error)
	VerifySignature(n dto.Notification) bool
}

type Midtrans struct {
	serverKey string
	clientKey string
	snap      snap.Client
	core      coreapi.Client
}

func NewMidtrans(serverKey, clientKey string, production bool) *Midtrans {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	m := &Midtrans{serverKey: serverKey, clientKey: clientKey}
	m.snap.New(serverKey, env)
	m.core.New(serverKey, env)
	return m
}

func (m *Midtrans) Name() string      { return paymentModel.ProviderMidtrans }
func (m *Midtrans) ClientKey() string { return m.clientKey }

func (m *Midtrans) CreateCharge(_ context.Context, ch Charge) (ChargeResult, error) {
	gross := int64(math.Round(ch.Amount))
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  ch.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: ch.Customer.Name,
			Email: ch.Customer.Email,
			Phone: ch.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       ch.ItemID,
			Price:    gross,
			Qty:      1,
			Name:     truncate(ch.ItemName, 50),
			Category: "listing_boost",
		}},
		CustomField1: truncate(ch.Description, 40),
	}
	resp, mErr := m.snap.CreateTransaction(req)
	if mErr != nil {
		return ChargeResult{}, fmt.Errorf("midtrans create transaction: %w", mErr)
	}
	return ChargeResult{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (m *Midtrans) Status(_ context.Context, orderID string) (GatewayStatus, error) {
	resp, mErr := m.core.CheckTransaction(orderID)
	if mErr != nil {
		return GatewayStatus{}, fmt.Errorf("midtrans check transaction: %w", mErr)
	}
	return GatewayStatus{
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		TransactionID:     resp.TransactionID,
		PaymentType:       resp.PaymentType,
		GrossAmount:       resp.GrossAmount,
	}, nil
}

// VerifySignature checks SHA512(order_id + status_code + gross_amount + server_key).
func (m *Midtrans) VerifySignature(n dto.Notification) bool {
	want := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	if want == "" {
		return false
	}
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + m.serverKey))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ResolveGateway prefers an enabled midtrans row in payment_providers, then the MIDTRANS_* env.
// ok is false when neither carries a server key; boost checkout then runs in demo mode.
var ResolveGateway = func(ctx context.Context, db *gorm.DB) (Gateway, bool) {
	if creds, ok := providerService.EnabledPaymentCredentials(ctx, db, paymentModel.ProviderMidtrans); ok {
		clientKey, serverKey := creds.Active()
		return NewMidtrans(serverKey, clientKey, creds.Mode == providerModel.ModeLive), true
	}
	serverKey := configs.GetEnv("MIDTRANS_SERVER_KEY")
	if strings.TrimSpace(serverKey) == "" {
		return nil, false
	}
	return NewMidtrans(serverKey, configs.GetEnv("MIDTRANS_CLIENT_KEY"), configs.GetEnvBool("MIDTRANS_USE_PROD", false)), true
}

// MapGatewayStatus converts a gateway transaction status into a payment status.
// Unknown values keep current.
func MapGatewayStatus(current, transactionStatus, fraudStatus string) string {
	switch strings.ToLower(transactionStatus) {
	case "capture":
		switch strings.ToLower(fraudStatus) {
		case "", "accept":
			return paymentModel.PaymentCompleted
		case "challenge":
			return paymentModel.PaymentPending
		}
		return paymentModel.PaymentFailed
	case "settlement":
		return paymentModel.PaymentCompleted
	case "pending":
		return paymentModel.PaymentPending
	case "deny", "cancel", "expire", "failure":
		return paymentModel.PaymentFailed
	case "refund", "partial_refund":
		return paymentModel.PaymentRefunded
	}
	return current
}
