// Package bootstrap performs one-time startup provisioning: the base role
// labels exist implicitly through the seeded accounts, and a default admin
// plus a demo user are created when absent so a fresh deployment is usable
// immediately.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/interactive/eservice-platform/internal/core/domain"
	"github.com/interactive/eservice-platform/internal/core/ports"
)

type seedAccount struct {
	username string
	password string
	roles    []string
}

var seedAccounts = []seedAccount{
	{username: "admin", password: "adminpass", roles: []string{domain.RoleAdmin}},
	{username: "user1", password: "userpass", roles: []string{domain.RoleUser}},
}

// Seed ensures the default accounts exist. Idempotent: accounts already
// present are left untouched.
func Seed(ctx context.Context, repo ports.UserRepository, log zerolog.Logger) error {
	for _, acc := range seedAccounts {
		if _, err := repo.FindByUsername(ctx, acc.username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed: lookup %s: %w", acc.username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password for %s: %w", acc.username, err)
		}

		if _, err := repo.Create(ctx, &domain.User{
			Username:     acc.username,
			PasswordHash: string(hash),
			Roles:        acc.roles,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			// A concurrent replica may have won the race; that is fine.
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return fmt.Errorf("seed: create %s: %w", acc.username, err)
		}

		log.Info().Str("username", acc.username).Msg("seeded default account")
	}
	return nil
}
