package pages

import (
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	bookingTicketInput  = inputByLabel.Format("Номер билета")
	bookingCheckButton  = XPath(`//button[contains(text(), 'Проверить билет')]`)
	bookingExcursions   = XPath(`//div[@role='button' and contains(@class, 'MuiListItemButton')]`)
	bookingExcursion    = Template(`//div[@role='button' and contains(@class, 'MuiListItemButton') and contains(., %s)]`)
	bookingHolderName   = inputByLabel.Format("Фамилия Имя")
	bookingHolderEmail  = XPath(`//label[contains(text(), 'Email')]/following-sibling::div//input[@type='email']`)
	bookingSubmit       = XPath(`//button[contains(text(), 'Забронировать')]`)
	bookingSuccessTitle = XPath(`//h6[contains(text(), 'успешно') or contains(text(), 'успех')]`)
	bookingSuccessAlert = XPath(`//div[contains(@class, 'MuiAlert-standardSuccess')]`)
	bookingAlert        = XPath(`//div[contains(@class, 'MuiAlert')]`)
)

// PublicBookingPage is the unauthenticated booking flow at /booking.
type PublicBookingPage struct {
	Base
}

// NewPublicBookingPage binds the public booking flow to page.
func NewPublicBookingPage(page playwright.Page, cfg *config.Config) *PublicBookingPage {
	return &PublicBookingPage{Base: NewBase(page, cfg, "/booking")}
}

// CheckTicket submits a ticket number and waits for the bookable
// excursions to load.
func (p *PublicBookingPage) CheckTicket(ticketNumber string) error {
	if err := p.Type(bookingTicketInput, ticketNumber); err != nil {
		return err
	}
	if err := p.Click(bookingCheckButton); err != nil {
		return err
	}
	if !p.IsVisible(bookingExcursions, p.wait) {
		// An invalid ticket shows an alert instead of the list; Notice reads it.
		return nil
	}
	p.Settle(time.Second)
	return nil
}

// HasExcursion reports whether the list offers an excursion called name.
func (p *PublicBookingPage) HasExcursion(name string) bool {
	return p.IsVisible(bookingExcursion.Format(name), DefaultVisibleTimeout)
}

// SelectExcursion picks an excursion and waits for the holder form.
func (p *PublicBookingPage) SelectExcursion(name string) error {
	if err := p.Click(bookingExcursion.Format(name)); err != nil {
		return err
	}
	_, err := p.Find(bookingHolderName)
	return err
}

// BookWithHolder fills the holder form and submits the booking.
func (p *PublicBookingPage) BookWithHolder(name, email string) error {
	if err := p.Type(bookingHolderName, name); err != nil {
		return err
	}
	if err := p.Type(bookingHolderEmail, email); err != nil {
		return err
	}
	if err := p.Click(bookingSubmit); err != nil {
		return err
	}
	p.Settle(2 * time.Second)
	return nil
}

// IsBookingSuccessful reports whether a success heading or alert shows.
func (p *PublicBookingPage) IsBookingSuccessful() bool {
	return p.IsVisible(bookingSuccessTitle, DefaultVisibleTimeout) || p.IsVisible(bookingSuccessAlert, DefaultVisibleTimeout)
}

// Notice is the text of the first visible alert, or "".
func (p *PublicBookingPage) Notice() string {
	if !p.IsVisible(bookingAlert, 2*time.Second) {
		return ""
	}
	text, _ := p.Text(bookingAlert)
	return text
}
