package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Gateway creates checkout preferences for booking deposits.
type Gateway interface {
	// CreateDepositPreference returns the gateway preference ID for a
	// deposit charge tied to a booking.
	CreateDepositPreference(
		ctx context.Context,
		bookingID uint,
		serviceName string,
		amount float64,
	) (string, error)
}

// MercadoPago is the production gateway.
type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

func (g *MercadoPago) CreateDepositPreference(
	ctx context.Context,
	bookingID uint,
	serviceName string,
	amount float64,
) (string, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("Deposit: %s", serviceName),
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		ExternalReference: fmt.Sprintf("booking-%d", bookingID),
	}

	resource, err := g.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resource.ID, nil
}

// Disabled is used when no gateway credentials are configured. Deposits
// are still recorded locally; the preference ID stays empty.
type Disabled struct{}

func (Disabled) CreateDepositPreference(context.Context, uint, string, float64) (string, error) {
	return "", nil
}
