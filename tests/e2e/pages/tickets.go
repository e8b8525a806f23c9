package pages

import (
	"regexp"
	"strconv"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	ticketGenerateButton = XPath(`//button[contains(text(), '+ Сгенерировать билеты')]`)
	ticketCount          = numberField.Format("Количество билетов")
	ticketExpiresIn      = numberField.Format("Истекает через")
	ticketConfirm        = XPath(`//div[@role='dialog']//button[contains(text(), 'Сгенерировать') and not(ancestor::h2)]`)
	ticketRows           = XPath(`//div[@role='row' and @data-rowindex]`)
	ticketPagination     = CSS(`.MuiTablePagination-displayedRows`)
)

// Total in a pagination footer such as "1–25 of 130" or "1–25 из 130".
var displayedRowsTotal = regexp.MustCompile(`(?:of|из)\s+(?:more than\s+|более\s+)?(\d+)`)

// GoldenTicketsPage is the ticket registry at /tickets.
type GoldenTicketsPage struct {
	Base
}

// NewGoldenTicketsPage binds the ticket registry to page.
func NewGoldenTicketsPage(page playwright.Page, cfg *config.Config) *GoldenTicketsPage {
	return &GoldenTicketsPage{Base: NewBase(page, cfg, "/tickets")}
}

// GenerateTickets issues count tickets valid for expiresInDays days.
func (p *GoldenTicketsPage) GenerateTickets(count, expiresInDays int) error {
	if err := p.OpenDialog(ticketGenerateButton); err != nil {
		return err
	}
	if err := p.TypeForce(ticketCount, strconv.Itoa(count)); err != nil {
		return err
	}
	if err := p.TypeForce(ticketExpiresIn, strconv.Itoa(expiresInDays)); err != nil {
		return err
	}
	if err := p.Click(ticketConfirm); err != nil {
		return err
	}
	return p.awaitToast()
}

// TicketCount is the number of tickets in the grid. The grid pages its rows,
// so the total comes from the pagination footer; rendered rows are counted
// only when there is no footer.
func (p *GoldenTicketsPage) TicketCount() (int, error) {
	p.Settle(2 * time.Second)
	if p.IsVisible(ticketPagination, time.Second) {
		text, err := p.Text(ticketPagination)
		if err != nil {
			return 0, err
		}
		if total, ok := parseDisplayedRows(text); ok {
			return total, nil
		}
	}
	return p.Count(ticketRows)
}

func parseDisplayedRows(text string) (int, bool) {
	m := displayedRowsTotal.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	total, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return total, true
}

// TicketRowExists reports whether a row for ticketNumber shows.
func (p *GoldenTicketsPage) TicketRowExists(ticketNumber string) bool {
	return p.HasRow(ticketNumber, DefaultVisibleTimeout)
}
