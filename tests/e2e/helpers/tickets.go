package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielsheh02/willy-wonka-factory/sdk/client"
	"github.com/danielsheh02/willy-wonka-factory/sdk/types"
	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
)

// ErrNoTickets means the backend has no golden tickets at all.
var ErrNoTickets = errors.New("no golden tickets in the system")

// NewAPIClient returns a backend client for cfg.APIURL signed in as account.
func NewAPIClient(ctx context.Context, cfg *config.Config, account config.Account) (*client.Client, error) {
	c := client.New(&client.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeouts.Explicit})
	cred := cfg.Credentials(account)
	if _, err := c.Auth.SignIn(ctx, cred.Username, cred.Password); err != nil {
		return nil, fmt.Errorf("sign-in as %s failed: %w", cred.Username, err)
	}
	return c, nil
}

// FetchLatestTicketNumber asks the backend, as the admin account, for the
// ticket a booking should use. The UI never displays full ticket numbers,
// so this goes around it.
func FetchLatestTicketNumber(ctx context.Context, cfg *config.Config) (string, error) {
	c, err := NewAPIClient(ctx, cfg, config.Admin)
	if err != nil {
		return "", err
	}
	tickets, err := c.Tickets.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing tickets failed: %w", err)
	}
	ticket := types.LatestActive(tickets)
	if ticket == nil {
		return "", ErrNoTickets
	}
	return ticket.TicketNumber, nil
}
