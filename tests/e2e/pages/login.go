package pages

import (
	"fmt"
	"time"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/playwright-community/playwright-go"
)

var (
	loginUsername = inputByLabel.Format("Логин")
	loginPassword = inputByLabel.Format("Пароль")
	loginSubmit   = XPath(`//button[@type='submit' and contains(text(), 'Войти')]`)
	loginError    = XPath(`//div[contains(@class, 'MuiAlert-standardError')]`)
)

// LoginPage is the sign-in form at /login.
type LoginPage struct {
	Base
}

// NewLoginPage binds the sign-in form to page.
func NewLoginPage(page playwright.Page, cfg *config.Config) *LoginPage {
	return &LoginPage{Base: NewBase(page, cfg, "/login")}
}

// Login fills the form and submits it. It does not wait for the outcome.
func (p *LoginPage) Login(username, password string) error {
	if err := p.Type(loginUsername, username); err != nil {
		return err
	}
	if err := p.Type(loginPassword, password); err != nil {
		return err
	}
	return p.Click(loginSubmit)
}

// IsErrorDisplayed reports whether the credentials were rejected.
func (p *LoginPage) IsErrorDisplayed() bool {
	return p.IsVisible(loginError, 3*time.Second)
}

// ErrorText is the rejection message, or "" when none is shown.
func (p *LoginPage) ErrorText() string {
	if !p.IsErrorDisplayed() {
		return ""
	}
	text, _ := p.Text(loginError)
	return text
}

// IsAuthenticated reports whether the browser left the login route.
func (p *LoginPage) IsAuthenticated() bool {
	return p.WaitURLLeaves("/login", DefaultURLTimeout)
}

// LoginAs opens the form, signs in and waits for the app to accept it.
func (p *LoginPage) LoginAs(cred config.Credential) error {
	if err := p.Open(); err != nil {
		return err
	}
	if err := p.Login(cred.Username, cred.Password); err != nil {
		return err
	}
	if !p.IsAuthenticated() {
		if msg := p.ErrorText(); msg != "" {
			return fmt.Errorf("login as %s rejected: %s", cred.Username, msg)
		}
		return fmt.Errorf("login as %s did not leave the login page", cred.Username)
	}
	return nil
}

// Logout drops the stored session and returns to the login form.
func (p *LoginPage) Logout() error {
	if _, err := p.page.Evaluate(`() => { window.localStorage.clear(); window.sessionStorage.clear(); }`); err != nil {
		return fmt.Errorf("failed to clear session storage: %w", err)
	}
	return p.Open()
}
