package store

import (
	"path/filepath"

	"github.com/google/uuid"
)

// User is the locally signed-in user. Login is a stub: no credentials are
// checked.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// Users holds the current user, persisted as user.json under a directory.
// Logging out removes the file.
type Users struct {
	file *File[*User]
}

// NewUsers creates a user store under dir.
func NewUsers(dir string) *Users {
	return &Users{file: NewFile[*User](filepath.Join(dir, "user.json"), nil)}
}

// Load restores the signed-in user from disk.
func (u *Users) Load() error {
	return u.file.Load()
}

// Save persists the current user, or removes the file when signed out.
func (u *Users) Save() error {
	return persistUser(u.file)
}

// Subscribe registers fn to be called on login and logout (with nil).
func (u *Users) Subscribe(fn func(*User)) (unsubscribe func()) {
	return u.file.Subscribe(fn)
}

// Login signs user in, assigning an ID when none is given.
func (u *Users) Login(user User) (User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := u.file.Update(func(*User) *User {
		cp := user
		return &cp
	}, persistUser)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Logout signs the current user out.
func (u *Users) Logout() error {
	return u.file.Update(func(*User) *User { return nil }, persistUser)
}

// Current returns the signed-in user.
func (u *Users) Current() (User, bool) {
	p := u.file.Get()
	if p == nil {
		return User{}, false
	}
	return *p, true
}

func persistUser(f *File[*User]) error {
	if f.Get() == nil {
		return f.Remove()
	}
	return f.Save()
}
