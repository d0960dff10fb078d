package domain

import (
	"errors"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	PasswordMinLength = 6
)

var (
	Roles = []interface{}{RoleUser, RoleAdmin}

	emailExp        = regexp2.MustCompile(`^\S+@\S+\.\S+$`, regexp2.ECMAScript)
	errInvalidEmail = errors.New("must be a valid email address")
)

type User struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Password       string      `json:"-"`
	Role           string      `json:"role"`
	SavedFestivals []string    `json:"savedFestivals"`
	Preferences    Preferences `json:"preferences"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type Preferences struct {
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
}

// Validate checks a user about to be registered. Password is the plain
// text one at this point and is keyed explicitly since its json tag hides it.
func (u User) Validate() error {
	return validation.Errors{
		"name":     validation.Validate(u.Name, validation.Required),
		"email":    validation.Validate(u.Email, validation.Required, EmailRule),
		"password": validation.Validate(u.Password, validation.Required, validation.Length(PasswordMinLength, 0)),
		"role":     validation.Validate(u.Role, validation.Required, validation.In(Roles...)),
	}.Filter()
}

// EmailRule accepts anything shaped like local@domain.tld.
var EmailRule = validation.By(func(value interface{}) error {
	value, _ = validation.Indirect(value)
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	ok, err := emailExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidEmail
	}

	return nil
})

// Claims is what a verified session token says about its bearer.
type Claims struct {
	UserID    string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}
