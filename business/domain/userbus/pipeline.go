package userbus

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/jcpaschoal/agenda/business/sdk/validation"
	"github.com/jcpaschoal/agenda/business/types/name"
	"github.com/jcpaschoal/agenda/business/types/password"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost applied to stored credentials.
const HashCost = 10

// Write carries a user through the write pipeline. Previous is nil on create.
// The raw fields hold caller input that a step still has to apply to User;
// a nil raw field was not part of the write.
type Write struct {
	Previous *User
	User     User
	Name     *string
	Email    *string
	Password *string
}

// Step transforms or rejects a write before it reaches the store.
type Step func(ctx context.Context, w *Write) error

// DefaultCreateSteps is the pipeline run before a user is inserted.
func DefaultCreateSteps() []Step {
	return []Step{Validate, HashPassword(HashCost)}
}

// DefaultUpdateSteps is the pipeline run before a user is updated.
func DefaultUpdateSteps() []Step {
	return []Step{Validate, HashPassword(HashCost)}
}

func runSteps(ctx context.Context, steps []Step, w *Write) error {
	for _, step := range steps {
		if err := step(ctx, w); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================

// Validate applies the raw name and email to the user and checks the
// password. On create every one of them is required.
func Validate(ctx context.Context, w *Write) error {
	creating := w.Previous == nil

	switch {
	case w.Name != nil:
		nme, err := name.Parse(*w.Name)
		if err != nil {
			return validation.NewFieldError("name", err)
		}
		w.User.Name = nme
		w.Name = nil

	case creating:
		return validation.NewFieldError("name", validation.ErrRequired)
	}

	switch {
	case w.Email != nil:
		if *w.Email == "" {
			return validation.NewFieldError("email", validation.ErrRequired)
		}

		addr, err := mail.ParseAddress(*w.Email)
		if err != nil {
			return validation.NewFieldError("email", fmt.Errorf("malformed email %q", *w.Email))
		}
		w.User.Email = mail.Address{Address: addr.Address}
		w.Email = nil

	case creating:
		return validation.NewFieldError("email", validation.ErrRequired)
	}

	switch {
	case w.Password != nil:
		if _, err := password.Parse(*w.Password); err != nil {
			return validation.NewFieldError("password", err)
		}

	case creating:
		return validation.NewFieldError("password", validation.ErrRequired)
	}

	return nil
}

// HashPassword replaces the plaintext password with a bcrypt hash of the
// given cost and discards the plaintext. A password that already verifies
// against the previous hash keeps that hash byte for byte.
func HashPassword(cost int) Step {
	return func(ctx context.Context, w *Write) error {
		if w.Password == nil {
			return nil
		}

		plain := []byte(*w.Password)
		w.Password = nil

		if w.Previous != nil && len(w.Previous.PasswordHash) > 0 {
			if err := bcrypt.CompareHashAndPassword(w.Previous.PasswordHash, plain); err == nil {
				w.User.PasswordHash = w.Previous.PasswordHash
				return nil
			}
		}

		hash, err := bcrypt.GenerateFromPassword(plain, cost)
		if err != nil {
			return fmt.Errorf("generatefrompassword: %w", err)
		}

		w.User.PasswordHash = hash

		return nil
	}
}
