package models

import (
	"regexp"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser      Role = "User"
	RolePublisher Role = "Publisher"
	RoleAdmin     Role = "Admin"
)

// ValidRegisterRole reports whether a role may be chosen at registration.
// Admin accounts are only created through the admin endpoints.
func ValidRegisterRole(r Role) bool {
	return r == RoleUser || r == RolePublisher
}

func ValidRole(r Role) bool {
	return r == RoleUser || r == RolePublisher || r == RoleAdmin
}

type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Role                Role               `bson:"role" json:"role"`
	Password            string             `bson:"password" json:"-"`
	ResetPasswordToken  string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time          `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword enforces 6-20 characters with at least one uppercase, one
// lowercase and one digit.
func ValidPassword(password string) bool {
	if len(password) < 6 || len(password) > 20 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
