package pages

import (
	"fmt"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	userCreateButton = XPath(`//button[contains(text(), 'Создать')]`)
	userDialogTitle  = XPath(`//h2[contains(text(), 'Создать') or contains(text(), 'Редактировать')]`)
	userUsername     = inputByLabel.Format("Логин")
	userPassword     = inputByLabel.Format("Пароль")
	userRoleSelect   = selectField.Format("Роль")

	// Older builds render the role select without a combobox role.
	userRoleSelectAlt = XPath(`//div[@id='mui-component-select-role' or contains(@class, 'MuiSelect-select') and ancestor::div[preceding-sibling::label[contains(text(), 'Роль')]]]`)
)

// UsersPage is the user administration grid at /users.
type UsersPage struct {
	Base
}

// NewUsersPage binds the user administration grid to page.
func NewUsersPage(page playwright.Page, cfg *config.Config) *UsersPage {
	return &UsersPage{Base: NewBase(page, cfg, "/users")}
}

// CreateUser adds an account with the given role through the create dialog.
func (p *UsersPage) CreateUser(username, password string, role Role) error {
	label, ok := role.Label()
	if !ok {
		return fmt.Errorf("unknown role %q", role)
	}
	if err := p.OpenDialog(userCreateButton); err != nil {
		return err
	}
	if _, err := p.Find(userDialogTitle); err != nil {
		return err
	}
	if err := p.Type(userUsername, username); err != nil {
		return err
	}
	if err := p.Type(userPassword, password); err != nil {
		return err
	}

	roleSelect := userRoleSelect
	if !p.IsVisible(roleSelect, 2*time.Second) {
		roleSelect = userRoleSelectAlt
	}
	if err := p.Choose(roleSelect, optionByText.Format(label)); err != nil {
		return fmt.Errorf("failed to pick role %s: %w", role, err)
	}
	return p.SaveDialog()
}

// UserExists reports whether a row for username shows within five seconds.
func (p *UsersPage) UserExists(username string) bool {
	return p.HasRow(username, DefaultVisibleTimeout)
}
