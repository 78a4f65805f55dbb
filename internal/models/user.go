package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User owns all categories and records.
type User struct {
	DefaultModel
	Username     string `gorm:"uniqueIndex:user_username"`
	PasswordHash string
	Active       bool `gorm:"default:true"`
}

var (
	ErrUsernameNotUnique = errors.New("this username is already taken")
	ErrUsernameEmpty     = errors.New("the username must not be empty")
	ErrPasswordEmpty     = errors.New("the password must not be empty")
	ErrUserInactive      = errors.New("the user account is not active")
	ErrCredentialsWrong  = errors.New("the username or the password is wrong")
)

// Categories every user starts with. The first one of each kind is the default category.
var (
	bootstrapExpenseCategories = []string{DefaultCategoryName, "Groceries", "Rent", "Entertainment"}
	bootstrapIncomeCategories  = []string{DefaultCategoryName, "Salary", "Gifts"}
)

// NewUser returns a user with the bcrypt hash of the password.
func NewUser(username, password string) (User, error) {
	if password == "" {
		return User{}, ErrPasswordEmpty
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return User{
		Username:     username,
		PasswordHash: string(hash),
		Active:       true,
	}, nil
}

// CheckPassword reports if the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Authenticate returns the active user with the username if the password matches.
//
// Unknown users and wrong passwords both result in ErrCredentialsWrong.
func Authenticate(db *gorm.DB, username, password string) (User, error) {
	var user User
	err := db.Where("username = ?", strings.TrimSpace(username)).Take(&user).Error
	if errors.Is(err, ErrResourceNotFound) {
		return User{}, ErrCredentialsWrong
	} else if err != nil {
		return User{}, err
	}

	if !user.CheckPassword(password) {
		return User{}, ErrCredentialsWrong
	}

	if !user.Active {
		return User{}, ErrUserInactive
	}

	return user, nil
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return ErrUsernameEmpty
	}

	return nil
}

// AfterCreate creates the categories every user starts with.
//
// gorm runs hooks in the transaction of the create call, so a user
// never exists without its default categories.
func (u *User) AfterCreate(tx *gorm.DB) error {
	for i, name := range bootstrapExpenseCategories {
		err := tx.Create(&ExpenseCategory{OwnerID: u.ID, Name: name, Default: i == 0}).Error
		if err != nil {
			return err
		}
	}

	for i, name := range bootstrapIncomeCategories {
		err := tx.Create(&IncomeCategory{OwnerID: u.ID, Name: name, Default: i == 0}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// lockOwner locks the owner's row for the rest of the transaction on
// databases that support row locks.
func lockOwner(tx *gorm.DB, ownerID uuid.UUID) error {
	var user User
	return tx.Clauses(forUpdate).Where("id = ?", ownerID).Take(&user).Error
}
