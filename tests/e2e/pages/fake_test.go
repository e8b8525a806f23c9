package pages

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var errFakeTimeout = errors.New("Timeout 15000ms exceeded")

// fakeElement is one node of the fake DOM.
type fakeElement struct {
	visible bool
	text    string
	value   string
	attrs   map[string]string
	checked bool
	items   []string
	onClick func()
}

// fakePage stands in for a browser page. Only the methods the page objects
// call are implemented; anything else panics on the nil embedded interface.
type fakePage struct {
	playwright.Page
	elements map[string]*fakeElement
	url      string
	actions  []string
}

func newFakePage() *fakePage {
	return &fakePage{elements: map[string]*fakeElement{}, url: "about:blank"}
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:  "http://factory.test",
		Timeouts: config.Timeouts{Implicit: time.Second, Explicit: time.Second, PageLoad: time.Second},
	}
}

// show registers a visible element at loc.
func (p *fakePage) show(loc Locator) *fakeElement {
	el := &fakeElement{visible: true, attrs: map[string]string{}}
	p.elements[loc.String()] = el
	return el
}

// showAll registers a visible element for each locator.
func (p *fakePage) showAll(locs ...Locator) {
	for _, loc := range locs {
		p.show(loc)
	}
}

func (p *fakePage) record(format string, args ...any) {
	p.actions = append(p.actions, fmt.Sprintf(format, args...))
}

func (p *fakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	return &fakeLocator{page: p, selector: selector}
}

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.url = url
	p.record("goto %s", url)
	return nil, nil
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error {
	if match, ok := url.(func(string) bool); ok && match(p.url) {
		return nil
	}
	return errFakeTimeout
}

func (p *fakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	return nil
}

func (p *fakePage) WaitForTimeout(timeout float64) {}

func (p *fakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	p.record("script %s", expression)
	return nil, nil
}

// pwLocator lets fakeLocator embed the interface without a field named
// Locator shadowing the interface's Locator method.
type pwLocator = playwright.Locator

type fakeLocator struct {
	pwLocator
	page     *fakePage
	selector string
	itemText *string
}

func (l *fakeLocator) el() *fakeElement {
	return l.page.elements[l.selector]
}

func (l *fakeLocator) First() playwright.Locator { return l }

func (l *fakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	state := *playwright.WaitForSelectorStateVisible
	if len(options) > 0 && options[0].State != nil {
		state = *options[0].State
	}
	el := l.el()
	var ok bool
	switch state {
	case *playwright.WaitForSelectorStateHidden, *playwright.WaitForSelectorStateDetached:
		ok = el == nil || !el.visible
	case *playwright.WaitForSelectorStateAttached:
		ok = el != nil
	default:
		ok = el != nil && el.visible
	}
	if !ok {
		return errFakeTimeout
	}
	return nil
}

func (l *fakeLocator) actionable() (*fakeElement, error) {
	el := l.el()
	if el == nil || !el.visible {
		return nil, fmt.Errorf("%s: %w", l.selector, errFakeTimeout)
	}
	return el, nil
}

func (l *fakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	el, err := l.actionable()
	if err != nil {
		return err
	}
	l.page.record("click %s", l.selector)
	if el.onClick != nil {
		el.onClick()
	}
	return nil
}

func (l *fakeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	el, err := l.actionable()
	if err != nil {
		return err
	}
	el.value = value
	l.page.record("fill %s=%s", l.selector, value)
	return nil
}

func (l *fakeLocator) Press(key string, options ...playwright.LocatorPressOptions) error {
	el, err := l.actionable()
	if err != nil {
		return err
	}
	if key == "Backspace" {
		el.value = ""
	}
	l.page.record("press %s %s", l.selector, key)
	return nil
}

func (l *fakeLocator) PressSequentially(text string, options ...playwright.LocatorPressSequentiallyOptions) error {
	el, err := l.actionable()
	if err != nil {
		return err
	}
	el.value += text
	l.page.record("type %s=%s", l.selector, text)
	return nil
}

func (l *fakeLocator) Evaluate(expression string, arg interface{}, options ...playwright.LocatorEvaluateOptions) (interface{}, error) {
	el := l.el()
	if el == nil {
		return nil, errFakeTimeout
	}
	if value, ok := arg.(string); ok {
		el.value = value
		l.page.record("set %s=%s", l.selector, value)
		return nil, nil
	}
	switch {
	case strings.Contains(expression, "scrollIntoView"):
		l.page.record("scroll %s", l.selector)
	case strings.Contains(expression, "click()"):
		l.page.record("script-click %s", l.selector)
		if el.onClick != nil {
			el.onClick()
		}
	}
	return nil, nil
}

func (l *fakeLocator) InnerText(options ...playwright.LocatorInnerTextOptions) (string, error) {
	if l.itemText != nil {
		return *l.itemText, nil
	}
	el := l.el()
	if el == nil {
		return "", errFakeTimeout
	}
	return el.text, nil
}

func (l *fakeLocator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	el := l.el()
	if el == nil {
		return "", errFakeTimeout
	}
	return el.attrs[name], nil
}

func (l *fakeLocator) IsChecked(options ...playwright.LocatorIsCheckedOptions) (bool, error) {
	el := l.el()
	if el == nil {
		return false, errFakeTimeout
	}
	return el.checked, nil
}

// All yields one locator per entry of items, or a single match for a plain
// element.
func (l *fakeLocator) All() ([]playwright.Locator, error) {
	el := l.el()
	if el == nil {
		return nil, nil
	}
	if el.items == nil {
		return []playwright.Locator{l}, nil
	}
	all := make([]playwright.Locator, len(el.items))
	for i := range el.items {
		text := el.items[i]
		all[i] = &fakeLocator{page: l.page, selector: l.selector, itemText: &text}
	}
	return all, nil
}

func (p *fakePage) did(action string) bool {
	for _, a := range p.actions {
		if a == action {
			return true
		}
	}
	return false
}

func clicked(loc Locator) string { return "click " + loc.String() }

func filled(loc Locator, value string) string { return fmt.Sprintf("fill %s=%s", loc, value) }

func typed(loc Locator, value string) string { return fmt.Sprintf("type %s=%s", loc, value) }
