// Package types holds the JSON shapes exchanged with the factory backend.
package types

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// LocalTime is a backend timestamp. The backend serialises UTC wall-clock
// times without a zone suffix ("2025-01-04T14:00:00").
type LocalTime struct {
	time.Time
}

var localTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// UnmarshalJSON accepts null, zone-less and RFC 3339 timestamps.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range localTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// MarshalJSON writes the zone-less form the backend expects.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format("2006-01-02T15:04:05") + `"`), nil
}

// SignInRequest is the body of POST /api/auth/signin.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// JWTResponse is returned by a successful sign-in.
type JWTResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ErrorResponse covers the error bodies the backend produces: {"error": ...}
// from the ticket endpoints and {"message": ...} from auth.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// TicketStatus is the lifecycle state of a golden ticket.
type TicketStatus string

const (
	TicketActive    TicketStatus = "ACTIVE"
	TicketBooked    TicketStatus = "BOOKED"
	TicketUsed      TicketStatus = "USED"
	TicketExpired   TicketStatus = "EXPIRED"
	TicketCancelled TicketStatus = "CANCELLED"
)

// GoldenTicket is one entry of GET /api/tickets.
type GoldenTicket struct {
	ID                 int64        `json:"id"`
	TicketNumber       string       `json:"ticketNumber"`
	Status             TicketStatus `json:"status"`
	ExcursionID        *int64       `json:"excursionId,omitempty"`
	ExcursionName      string       `json:"excursionName,omitempty"`
	ExcursionStartTime LocalTime    `json:"excursionStartTime"`
	HolderName         string       `json:"holderName,omitempty"`
	HolderEmail        string       `json:"holderEmail,omitempty"`
	HolderPhone        string       `json:"holderPhone,omitempty"`
	GeneratedAt        LocalTime    `json:"generatedAt"`
	BookedAt           LocalTime    `json:"bookedAt"`
	UsedAt             LocalTime    `json:"usedAt"`
	ExpiresAt          LocalTime    `json:"expiresAt"`
}

// GenerateTicketsRequest is the body of POST /api/tickets/generate.
type GenerateTicketsRequest struct {
	Count         int  `json:"count"`
	ExpiresInDays *int `json:"expiresInDays,omitempty"`
}

// TicketValidation is returned by GET /api/tickets/validate/{number}.
type TicketValidation struct {
	Valid  bool          `json:"valid"`
	Ticket *GoldenTicket `json:"ticket,omitempty"`
}

// LatestActive picks the ticket a booking test should use: the most
// recently generated ACTIVE ticket, or the last ticket listed when none is
// active. It returns nil for an empty list.
func LatestActive(tickets []GoldenTicket) *GoldenTicket {
	if len(tickets) == 0 {
		return nil
	}
	var best *GoldenTicket
	for i := range tickets {
		t := &tickets[i]
		if t.Status != TicketActive {
			continue
		}
		if best == nil || !t.GeneratedAt.Before(best.GeneratedAt.Time) {
			best = t
		}
	}
	if best == nil {
		best = &tickets[len(tickets)-1]
	}
	return best
}
