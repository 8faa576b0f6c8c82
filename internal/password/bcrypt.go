package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/todo-server/internal/model"
)

// Bcrypt implements PasswordHasher using bcrypt.
type Bcrypt struct {
	cost int
}

var _ model.PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt creates a hasher with the given cost. Out of range costs fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
