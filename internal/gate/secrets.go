package gate

import (
	"fmt"
	"strings"

	"github.com/nexvault/storefront-backend/pkg/enums"
	"github.com/nexvault/storefront-backend/pkg/security"
)

// Secrets maps each rarity tier to the secret that unlocks its items.
type Secrets map[enums.Rarity]string

// ParseSecrets builds the tier table from configuration. Every tier must be
// present exactly once and no two tiers may share a secret.
func ParseSecrets(raw map[string]string) (Secrets, error) {
	secrets := make(Secrets, len(raw))
	for key, value := range raw {
		rarity, err := enums.ParseRarity(key)
		if err != nil {
			return nil, fmt.Errorf("gate secrets: %w", err)
		}
		if _, dup := secrets[rarity]; dup {
			return nil, fmt.Errorf("gate secrets: tier %s configured twice", rarity)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("gate secrets: tier %s has an empty secret", rarity)
		}
		secrets[rarity] = value
	}
	return secrets, secrets.Validate()
}

// Validate checks that the table is complete, that it does not mix argon2id
// hashes with plaintext, and that secrets are pairwise distinct. Salted hashes
// always differ, so for a fully hashed table distinctness of the underlying
// PINs is the operator's responsibility.
func (s Secrets) Validate() error {
	seen := make(map[string]enums.Rarity, len(s))
	hashed := 0
	for _, rarity := range enums.Rarities() {
		secret, ok := s[rarity]
		if !ok || secret == "" {
			return fmt.Errorf("gate secrets: missing tier %s", rarity)
		}
		if security.IsArgonHash(secret) {
			hashed++
		}
		if other, dup := seen[secret]; dup {
			return fmt.Errorf("gate secrets: tiers %s and %s share a secret", other, rarity)
		}
		seen[secret] = rarity
	}
	if hashed != 0 && hashed != len(seen) {
		return fmt.Errorf("gate secrets: %d of %d tiers are hashed; configure all tiers as plaintext or all as argon2id hashes", hashed, len(seen))
	}
	return nil
}

// For returns the secret bound to a tier.
func (s Secrets) For(rarity enums.Rarity) (string, bool) {
	secret, ok := s[rarity]
	return secret, ok
}
