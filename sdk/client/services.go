package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/danielsheh02/willy-wonka-factory/sdk/auth"
	"github.com/danielsheh02/willy-wonka-factory/sdk/types"
)

// AuthService handles sign-in
type AuthService struct {
	client *Client
}

// SignIn exchanges credentials for a token and installs it on the client,
// along with a refresh hook that signs in again when it nears expiry.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*types.JWTResponse, error) {
	var result types.JWTResponse
	req := types.SignInRequest{Username: username, Password: password}
	s.client.SetAuth(nil)
	if err := s.client.Post(ctx, "/api/auth/signin", &req, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("sign-in as %s returned no token", username)
	}

	jwtAuth := auth.NewJWTAuth(result.Token)
	jwtAuth.RefreshFunc = func() (string, error) {
		s.client.SetAuth(nil)
		defer s.client.SetAuth(jwtAuth)
		var fresh types.JWTResponse
		if err := s.client.Post(context.Background(), "/api/auth/signin", &req, &fresh); err != nil {
			return "", err
		}
		return fresh.Token, nil
	}
	s.client.SetAuth(jwtAuth)
	return &result, nil
}

// TicketsService handles golden ticket lookups
type TicketsService struct {
	client *Client
}

// List returns every golden ticket
func (s *TicketsService) List(ctx context.Context) ([]types.GoldenTicket, error) {
	var tickets []types.GoldenTicket
	if err := s.client.Get(ctx, "/api/tickets", &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Get returns the ticket with the given number
func (s *TicketsService) Get(ctx context.Context, number string) (*types.GoldenTicket, error) {
	var ticket types.GoldenTicket
	if err := s.client.Get(ctx, "/api/tickets/"+url.PathEscape(number), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Validate reports whether a ticket can still be booked
func (s *TicketsService) Validate(ctx context.Context, number string) (*types.TicketValidation, error) {
	var result types.TicketValidation
	if err := s.client.Get(ctx, "/api/tickets/validate/"+url.PathEscape(number), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Generate issues count new tickets
func (s *TicketsService) Generate(ctx context.Context, count int, expiresInDays *int) error {
	req := types.GenerateTicketsRequest{Count: count, ExpiresInDays: expiresInDays}
	return s.client.Post(ctx, "/api/tickets/generate", &req, nil)
}
