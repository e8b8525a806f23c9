package helpers

import (
	"fmt"

	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/config"
	"github.com/danielsheh02/willy-wonka-factory/tests/e2e/pages"
)

// AuthHelper signs a session in and out as one of the seeded accounts.
type AuthHelper struct {
	session *Session
	login   *pages.LoginPage
}

// NewAuthHelper creates a new authentication helper
func NewAuthHelper(session *Session) *AuthHelper {
	return &AuthHelper{
		session: session,
		login:   pages.NewLoginPage(session.Page, session.Config),
	}
}

// LoginAs signs in with the configured credentials of account.
func (a *AuthHelper) LoginAs(account config.Account) error {
	cred := a.session.Config.Credentials(account)
	if cred.Username == "" {
		return fmt.Errorf("no credentials configured for %s", account)
	}
	return a.login.LoginAs(cred)
}

// Logout clears the session and returns to the login form.
func (a *AuthHelper) Logout() error {
	return a.login.Logout()
}

// IsLoggedIn reports whether the browser is past the login form.
func (a *AuthHelper) IsLoggedIn() bool {
	return a.login.IsAuthenticated()
}
