package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

// DateTimeLocalLayout is the value format of a datetime-local input.
const DateTimeLocalLayout = "2006-01-02T15:04"

// Message reported when the availability check produced no verdict.
const availabilityUnknown = "Не удалось проверить доступность"

var (
	excursionCreateButton  = XPath(`//button[contains(text(), 'Создать экскурсию')]`)
	excursionName          = inputByLabel.Format("Название экскурсии")
	excursionStartTime     = ID("start-time-input")
	excursionParticipants  = numberField.Format("Количество участников")
	excursionGuideSelect   = selectField.Format("Экскурсовод")
	excursionStatusSelect  = selectField.Format("Статус")
	excursionConfirmed     = XPath(`//li[@role='option']//span[contains(text(), 'Подтверждена')]`)
	excursionNext          = XPath(`//button[contains(text(), 'Далее')]`)
	excursionBack          = XPath(`//button[contains(text(), 'Назад')]`)
	excursionAutoRoute     = XPath(`//span[contains(text(), 'Автоматическое построение маршрута')]/..//input[@type='checkbox']`)
	excursionAutoRouteText = XPath(`//span[contains(text(), 'Автоматическое построение маршрута')]/..`)
	excursionCheckButton   = XPath(`//button[contains(text(), 'Проверить доступность')]`)
	excursionSave          = ID("create-excursion-save-button")
	excursionAddWorkshop   = XPath(`//button[contains(text(), 'Добавить цех')]`)
	excursionStopWorkshop  = Template(`(//label[contains(text(), 'Цех')]/..//div[@role='combobox'])[%d]`)
	excursionStopMinutes   = Template(`(//label[contains(text(), 'Минут')]/following-sibling::div//input[@type='number'])[%d]`)
	excursionErrorAlert    = XPath(`//div[contains(@class, 'MuiAlert-standardError')]`)
	excursionSuccessAlert  = XPath(`//div[contains(@class, 'MuiAlert-standardSuccess')]`)
	excursionVerdictAlert  = XPath(`//div[contains(@class, 'MuiAlert-standardError') or contains(@class, 'MuiAlert-standardSuccess')]`)
	excursionSnackbar      = XPath(`//div[contains(@class, 'MuiSnackbar')]//div[contains(@class, 'MuiAlert')]`)
)

// Excursion is the first step of the create wizard.
type Excursion struct {
	Name         string
	StartTime    time.Time
	Participants int
	Guide        string
}

// RouteStop is one workshop visit of a manual route. Zero Minutes keeps
// the form's default duration.
type RouteStop struct {
	Workshop string
	Minutes  int
}

// Availability is the verdict of the route availability check. Unknown is
// set when no verdict showed at all, which is not the same as a conflict.
type Availability struct {
	Available bool
	Unknown   bool
	Message   string
}

// ExcursionsPage is the excursion planner at /excursions.
type ExcursionsPage struct {
	Base
}

// NewExcursionsPage binds the excursion planner to page.
func NewExcursionsPage(page playwright.Page, cfg *config.Config) *ExcursionsPage {
	return &ExcursionsPage{Base: NewBase(page, cfg, "/excursions")}
}

func (p *ExcursionsPage) fillBasicInfo(e Excursion) error {
	if err := p.OpenDialog(excursionCreateButton); err != nil {
		return err
	}
	if err := p.Type(excursionName, e.Name); err != nil {
		return err
	}
	if !e.StartTime.IsZero() {
		if err := p.SetNativeValue(excursionStartTime, e.StartTime.Format(DateTimeLocalLayout)); err != nil {
			return err
		}
	}
	if err := p.TypeForce(excursionParticipants, strconv.Itoa(e.Participants)); err != nil {
		return err
	}
	if e.Guide != "" {
		if err := p.Choose(excursionGuideSelect, optionByText.Format(e.Guide)); err != nil {
			return err
		}
	}
	if err := p.Choose(excursionStatusSelect, excursionConfirmed); err != nil {
		return err
	}
	return p.Click(excursionNext)
}

// AutoRouteEnabled reads the state of the automatic route switch.
func (p *ExcursionsPage) AutoRouteEnabled() (bool, error) {
	l, err := p.Find(excursionAutoRoute)
	if err != nil {
		return false, err
	}
	checked, err := l.IsChecked()
	if err != nil {
		return false, fmt.Errorf("failed to read route switch: %w", err)
	}
	return checked, nil
}

// SetAutoRoute flips the automatic route switch only when it is not
// already in the wanted position.
func (p *ExcursionsPage) SetAutoRoute(enabled bool) error {
	current, err := p.AutoRouteEnabled()
	if err != nil {
		return err
	}
	if current == enabled {
		return nil
	}
	return p.Click(excursionAutoRouteText)
}

// CreateWithAutoRoute fills the wizard, keeps automatic routing and saves.
func (p *ExcursionsPage) CreateWithAutoRoute(e Excursion) error {
	if err := p.fillBasicInfo(e); err != nil {
		return err
	}
	if err := p.SetAutoRoute(true); err != nil {
		return err
	}
	return p.Save()
}

// CreateWithManualRoute fills the wizard and adds stops in order. It stops
// before saving so the caller can check availability first.
func (p *ExcursionsPage) CreateWithManualRoute(e Excursion, stops []RouteStop) error {
	if err := p.fillBasicInfo(e); err != nil {
		return err
	}
	if err := p.SetAutoRoute(false); err != nil {
		return err
	}
	for i, stop := range stops {
		position := i + 1
		if err := p.Click(excursionAddWorkshop); err != nil {
			return err
		}
		if err := p.Choose(excursionStopWorkshop.At(position), optionByText.Format(stop.Workshop)); err != nil {
			return fmt.Errorf("stop %d: %w", position, err)
		}
		if stop.Minutes > 0 {
			if err := p.TypeForce(excursionStopMinutes.At(position), strconv.Itoa(stop.Minutes)); err != nil {
				return fmt.Errorf("stop %d: %w", position, err)
			}
		}
	}
	return nil
}

// CheckRouteAvailability asks the backend whether the route fits the
// schedule. An unavailable route is a result, not an error.
func (p *ExcursionsPage) CheckRouteAvailability() (Availability, error) {
	if err := p.Click(excursionCheckButton); err != nil {
		return Availability{}, err
	}
	if !p.IsVisible(excursionVerdictAlert, p.wait) {
		return Availability{Unknown: true, Message: availabilityUnknown}, nil
	}
	if p.IsVisible(excursionSuccessAlert, time.Second) {
		msg, _ := p.Text(excursionSuccessAlert)
		if msg == "" {
			msg = "Маршрут доступен"
		}
		return Availability{Available: true, Message: msg}, nil
	}
	if p.IsVisible(excursionErrorAlert, time.Second) {
		msg, _ := p.Text(excursionErrorAlert)
		return Availability{Message: strings.TrimSpace(msg)}, nil
	}
	return Availability{Unknown: true, Message: availabilityUnknown}, nil
}

// Back returns to the previous wizard step.
func (p *ExcursionsPage) Back() error {
	return p.Click(excursionBack)
}

// Save scrolls to the save button and clicks it from inside the page; the
// sticky dialog footer intercepts ordinary clicks.
func (p *ExcursionsPage) Save() error {
	if err := p.ScrollTo(excursionSave); err != nil {
		return err
	}
	if err := p.ClickScript(excursionSave); err != nil {
		return err
	}
	p.Settle(2 * time.Second)
	return nil
}

// ExcursionExists reports whether a row for name shows within five seconds.
func (p *ExcursionsPage) ExcursionExists(name string) bool {
	return p.HasRow(name, DefaultVisibleTimeout)
}

// NotificationText waits for the snackbar shown after saving and returns
// its text.
func (p *ExcursionsPage) NotificationText() (string, error) {
	if _, err := p.Find(excursionSnackbar); err != nil {
		return "", err
	}
	return p.Text(excursionSnackbar)
}

// ErrorMessage is the text of a visible error alert, or "".
func (p *ExcursionsPage) ErrorMessage() string {
	if !p.IsVisible(excursionErrorAlert, time.Second) {
		return ""
	}
	msg, _ := p.Text(excursionErrorAlert)
	return msg
}
