package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	bellBadge = XPath(`//button[contains(@class, 'MuiIconButton')]//span[contains(@class, 'MuiBadge-badge')]`)
	bellIcon  = XPath(`//button[contains(@class, 'MuiIconButton') and .//svg]`)
	bellMenu  = XPath(`//ul[@role='menu']`)
	bellItems = XPath(`//li[@role='menuitem']`)
)

// NotificationBell is the header bell present on every authenticated page.
type NotificationBell struct {
	Base
}

// NewNotificationBell binds the header bell of whatever page is open.
func NewNotificationBell(page playwright.Page, cfg *config.Config) *NotificationBell {
	return &NotificationBell{Base: NewBase(page, cfg, "")}
}

// HasNotifications reports whether the unread badge is showing.
func (n *NotificationBell) HasNotifications() bool {
	return n.IsVisible(bellBadge, 3*time.Second)
}

// UnreadCount is the number on the badge, or 0 when the badge is absent or
// not numeric. A capped badge such as "99+" reads as 99.
func (n *NotificationBell) UnreadCount() int {
	if !n.HasNotifications() {
		return 0
	}
	text, err := n.Text(bellBadge)
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(text), "+"))
	if err != nil {
		return 0
	}
	return count
}

// OpenNotifications opens the bell menu.
func (n *NotificationBell) OpenNotifications() error {
	if err := n.Click(bellIcon); err != nil {
		return err
	}
	if !n.IsVisible(bellMenu, 0) {
		return fmt.Errorf("notification menu did not open")
	}
	return nil
}

// Items returns the text of each entry in the open menu.
func (n *NotificationBell) Items() ([]string, error) {
	all, err := n.FindAll(bellItems)
	if err != nil {
		return nil, err
	}
	items := make([]string, 0, len(all))
	for _, item := range all {
		text, err := item.InnerText()
		if err != nil {
			return nil, fmt.Errorf("failed to read notification: %w", err)
		}
		items = append(items, strings.TrimSpace(text))
	}
	return items, nil
}
