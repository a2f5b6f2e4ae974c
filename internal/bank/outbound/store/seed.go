package store

import (
	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/hash"
	"github.com/fintechlabs/teller/internal/pkg/otp"
	"github.com/shopspring/decimal"
)

// Demo identities created on first run, documented in the README. Passwords
// are hashed at seed time; each account gets its own OTP secret, generated
// once and never rotated.
var demoAccounts = []struct {
	Username string
	Password string
	Role     entity.Role
	Balance  int64
}{
	{Username: "customer1", Password: "secure123", Role: entity.RoleCustomer, Balance: 1500},
	{Username: "customer2", Password: "wallet321", Role: entity.RoleCustomer, Balance: 3200},
	{Username: "admin1", Password: "adminpass", Role: entity.RoleAdmin},
}

// DemoSeed returns a SeedFunc producing the built-in demo account set.
func DemoSeed(hasher hash.Hash, totp otp.OTP) SeedFunc {
	return func() (map[string]entity.Account, error) {
		users := make(map[string]entity.Account, len(demoAccounts))

		for _, da := range demoAccounts {
			digest, err := hasher.Hash(da.Password)
			if err != nil {
				return nil, err
			}

			secret, _, err := totp.Generate(da.Username)
			if err != nil {
				return nil, err
			}

			users[da.Username] = entity.Account{
				Password:  string(digest),
				Role:      da.Role,
				Balance:   decimal.NewFromInt(da.Balance),
				OTPSecret: secret,
			}
		}

		return users, nil
	}
}
