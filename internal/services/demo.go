package services

import (
	"strings"

	"github.com/sbilibin2017/eduai-platform/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// DemoAccount is a built-in account that needs no hosted backend.
type DemoAccount struct {
	Email        string
	Name         string
	Role         models.Role
	passwordHash []byte
}

// DemoDirectory is the fixed set of demo accounts.
type DemoDirectory struct {
	accounts map[string]DemoAccount
}

// NewDemoDirectory hashes password once for every built-in account.
func NewDemoDirectory(password string, cost int) (*DemoDirectory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	d := &DemoDirectory{accounts: make(map[string]DemoAccount)}
	for _, a := range []DemoAccount{
		{Email: "student@rrc.ca", Name: "Demo Student", Role: models.RoleStudent},
		{Email: "educator@rrc.ca", Name: "Demo Educator", Role: models.RoleEducator},
		{Email: "researcher@rrc.ca", Name: "Demo Researcher", Role: models.RoleResearcher},
	} {
		a.passwordHash = hash
		d.accounts[a.Email] = a
	}
	return d, nil
}

// Lookup returns the account registered under email.
func (d *DemoDirectory) Lookup(email string) (DemoAccount, bool) {
	a, ok := d.accounts[strings.ToLower(strings.TrimSpace(email))]
	return a, ok
}

// ForRole returns the demo account with the given role.
func (d *DemoDirectory) ForRole(role models.Role) (DemoAccount, bool) {
	for _, a := range d.accounts {
		if a.Role == role {
			return a, true
		}
	}
	return DemoAccount{}, false
}

// Authenticate checks email and password against the directory.
func (d *DemoDirectory) Authenticate(email, password string) (DemoAccount, bool) {
	a, ok := d.Lookup(email)
	if !ok {
		return DemoAccount{}, false
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return DemoAccount{}, false
	}
	return a, true
}
