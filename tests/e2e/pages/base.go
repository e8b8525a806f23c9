// Package pages models the factory web UI as page objects. Each page exposes
// semantic actions (create a user, check a route) built from the Base
// primitives, and scenarios talk only to those actions.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

// Default budgets of the non-failing presence checks.
const (
	DefaultVisibleTimeout = 5 * time.Second
	DefaultGoneTimeout    = 10 * time.Second
	DefaultURLTimeout     = 10 * time.Second
	MinSettle             = 300 * time.Millisecond
)

// Screen is a page object with a route of its own.
type Screen interface {
	Open() error
}

// Shared MUI widgets.
var (
	dialogRoot   = XPath(`//div[contains(@class, 'MuiDialog-root') and @role='presentation']`)
	toast        = XPath(`//div[contains(@class, 'MuiAlert') or contains(@class, 'MuiSnackbar')]`)
	saveButton   = XPath(`//button[contains(text(), 'Сохранить')]`)
	optionByText = Template(`//li[@role='option' and contains(text(), %s)]`)
	rowWith      = Template(`//div[@role='row' and contains(., %s)]`)
	inputByLabel = Template(`//label[contains(text(), %s)]/following-sibling::div//input`)
	areaByLabel  = Template(`//label[contains(text(), %s)]/following-sibling::div//textarea`)
	numberField  = Template(`//label[contains(text(), %s)]/following-sibling::div//input[@type='number']`)
	selectField  = Template(`//label[contains(text(), %s)]/..//div[@role='combobox']`)
)

// Base holds the primitives every page object is built from. Failing
// operations return an error naming the locator; presence checks return
// false instead.
type Base struct {
	page    playwright.Page
	baseURL string
	wait    time.Duration
	path    string
}

// NewBase binds a page object rooted at path to page.
func NewBase(page playwright.Page, cfg *config.Config, path string) Base {
	return Base{
		page:    page,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		wait:    cfg.Timeouts.Explicit,
		path:    path,
	}
}

// Page exposes the underlying browser page.
func (b *Base) Page() playwright.Page { return b.page }

// Open navigates to the page's own route.
func (b *Base) Open() error {
	url := b.baseURL + b.path
	if _, err := b.page.Goto(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func (b *Base) locate(loc Locator) playwright.Locator {
	return b.page.Locator(loc.String()).First()
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Find waits up to the explicit wait for loc to be present in the DOM.
func (b *Base) Find(loc Locator) (playwright.Locator, error) {
	l := b.locate(loc)
	if err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: ms(b.wait),
	}); err != nil {
		return nil, fmt.Errorf("element %s not present after %s: %w", loc, b.wait, err)
	}
	return l, nil
}

// FindAll returns every current match of loc without waiting.
func (b *Base) FindAll(loc Locator) ([]playwright.Locator, error) {
	all, err := b.page.Locator(loc.String()).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", loc, err)
	}
	return all, nil
}

// Count is the number of current matches of loc.
func (b *Base) Count(loc Locator) (int, error) {
	all, err := b.FindAll(loc)
	return len(all), err
}

// Click waits until loc is visible and enabled, then clicks it.
func (b *Base) Click(loc Locator) error {
	if err := b.locate(loc).Click(playwright.LocatorClickOptions{Timeout: ms(b.wait)}); err != nil {
		return fmt.Errorf("failed to click %s: %w", loc, err)
	}
	return nil
}

// Type replaces the content of the field at loc with text.
func (b *Base) Type(loc Locator, text string) error {
	l, err := b.Find(loc)
	if err != nil {
		return err
	}
	if err := l.Fill(text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", loc, err)
	}
	return nil
}

// TypeForce selects everything in the field with the keyboard, deletes it
// and types text key by key. Number inputs that ignore programmatic clears
// need this.
func (b *Base) TypeForce(loc Locator, text string) error {
	l, err := b.Find(loc)
	if err != nil {
		return err
	}
	if err := l.Click(); err != nil {
		return fmt.Errorf("failed to focus %s: %w", loc, err)
	}
	for _, key := range []string{"ControlOrMeta+a", "Backspace"} {
		if err := l.Press(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", loc, err)
		}
	}
	if err := l.PressSequentially(text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", loc, err)
	}
	return nil
}

const nativeValueScript = `(input, value) => {
	const proto = input instanceof HTMLTextAreaElement ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
	Object.getOwnPropertyDescriptor(proto, 'value').set.call(input, value);
	input.dispatchEvent(new Event('input', { bubbles: true }));
}`

// SetNativeValue assigns value through the element's native value setter and
// fires a bubbling input event, so React-controlled inputs (datetime-local in
// particular) see the change.
func (b *Base) SetNativeValue(loc Locator, value string) error {
	l, err := b.Find(loc)
	if err != nil {
		return err
	}
	if _, err := l.Evaluate(nativeValueScript, value); err != nil {
		return fmt.Errorf("failed to set value of %s: %w", loc, err)
	}
	return nil
}

// IsVisible reports whether loc becomes visible within timeout
// (DefaultVisibleTimeout when zero). It never fails.
func (b *Base) IsVisible(loc Locator, timeout time.Duration) bool {
	err := b.locate(loc).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(orDefault(timeout, DefaultVisibleTimeout)),
	})
	return err == nil
}

// WaitGone waits until loc is hidden or detached (DefaultGoneTimeout when zero).
func (b *Base) WaitGone(loc Locator, timeout time.Duration) error {
	timeout = orDefault(timeout, DefaultGoneTimeout)
	if err := b.locate(loc).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: ms(timeout),
	}); err != nil {
		return fmt.Errorf("element %s still visible after %s: %w", loc, timeout, err)
	}
	return nil
}

// ScrollTo brings loc to the centre of the viewport.
func (b *Base) ScrollTo(loc Locator) error {
	l, err := b.Find(loc)
	if err != nil {
		return err
	}
	if _, err := l.Evaluate(`el => el.scrollIntoView({block: 'center'})`, nil); err != nil {
		return fmt.Errorf("failed to scroll to %s: %w", loc, err)
	}
	return nil
}

// ClickScript clicks loc from inside the page, bypassing overlays that would
// intercept a pointer click.
func (b *Base) ClickScript(loc Locator) error {
	l, err := b.Find(loc)
	if err != nil {
		return err
	}
	if _, err := l.Evaluate(`el => el.click()`, nil); err != nil {
		return fmt.Errorf("failed to click %s: %w", loc, err)
	}
	return nil
}

// WaitURLContains waits for the page URL to contain fragment
// (DefaultURLTimeout when timeout is zero).
func (b *Base) WaitURLContains(fragment string, timeout time.Duration) bool {
	return b.waitURL(func(u string) bool { return strings.Contains(u, fragment) }, timeout)
}

// WaitURLLeaves waits for the page URL to stop containing fragment.
func (b *Base) WaitURLLeaves(fragment string, timeout time.Duration) bool {
	return b.waitURL(func(u string) bool { return !strings.Contains(u, fragment) }, timeout)
}

func (b *Base) waitURL(match func(string) bool, timeout time.Duration) bool {
	if match(b.page.URL()) {
		return true
	}
	err := b.page.WaitForURL(match, playwright.PageWaitForURLOptions{
		Timeout:   ms(orDefault(timeout, DefaultURLTimeout)),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	return err == nil
}

// Text is the rendered text of loc.
func (b *Base) Text(loc Locator) (string, error) {
	l, err := b.Find(loc)
	if err != nil {
		return "", err
	}
	text, err := l.InnerText()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", loc, err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute reads an attribute of loc.
func (b *Base) Attribute(loc Locator, name string) (string, error) {
	l, err := b.Find(loc)
	if err != nil {
		return "", err
	}
	value, err := l.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s of %s: %w", name, loc, err)
	}
	return value, nil
}

// Settle waits for network activity to go quiet, at most max and at least
// MinSettle. It replaces fixed sleeps after actions that trigger refetches.
func (b *Base) Settle(max time.Duration) {
	if max < MinSettle {
		max = MinSettle
	}
	start := time.Now()
	_ = b.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(max),
	})
	if rest := MinSettle - time.Since(start); rest > 0 {
		b.page.WaitForTimeout(float64(rest.Milliseconds()))
	}
}

// OpenDialog clicks trigger and waits for a modal dialog to show.
func (b *Base) OpenDialog(trigger Locator) error {
	if err := b.Click(trigger); err != nil {
		return err
	}
	if !b.IsVisible(dialogRoot, b.wait) {
		return fmt.Errorf("dialog did not open after clicking %s", trigger)
	}
	return nil
}

// Choose opens the select at field and picks option.
func (b *Base) Choose(field, option Locator) error {
	if err := b.Click(field); err != nil {
		return err
	}
	return b.Click(option)
}

// SaveDialog presses the dialog's save button and waits for the
// confirmation toast.
func (b *Base) SaveDialog() error {
	if err := b.Click(saveButton); err != nil {
		return err
	}
	return b.awaitToast()
}

func (b *Base) awaitToast() error {
	if _, err := b.Find(toast); err != nil {
		return fmt.Errorf("no confirmation shown: %w", err)
	}
	b.Settle(time.Second)
	return nil
}

// HasRow reports whether a grid row containing text shows within timeout.
func (b *Base) HasRow(text string, timeout time.Duration) bool {
	return b.IsVisible(rowWith.Format(text), timeout)
}
