package gate

import (
	"context"
	"io"
	"testing"

	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/pkg/config"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/logger"
	"github.com/nexvault/storefront-backend/pkg/metrics"
	"github.com/nexvault/storefront-backend/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
)

var testSecrets = map[string]string{
	"mythic":    "5026",
	"legendary": "2716",
	"epic":      "4617",
	"rare":      "8293",
	"uncommon":  "2222",
	"common":    "1111",
}

func newCatalog(t *testing.T) catalog.Service {
	t.Helper()
	store, err := catalog.NewStore(map[enums.CatalogKind][]catalog.Item{
		enums.CatalogKindAccount: {
			{ID: "spotify", Name: "Spotify", Rarity: enums.RarityLegendary, Category: "Streaming", ExternalLink: "https://open.example/spotify"},
			{ID: "vpn", Name: "VPN", Rarity: enums.RarityRare, Category: "VPN", ExternalLink: "https://open.example/vpn"},
		},
		enums.CatalogKindGame: {
			{ID: "doom", Name: "DOOM", Rarity: enums.RarityEpic, Credentials: &catalog.Credentials{Username: "slayer", Password: "rip"}},
		},
	})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc, err := catalog.NewService(store)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return svc
}

func newGate(t *testing.T, raw map[string]string) Service {
	t.Helper()
	secrets, err := ParseSecrets(raw)
	if err != nil {
		t.Fatalf("parse secrets: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Catalog: newCatalog(t),
		Secrets: secrets,
		Metrics: metrics.NewGateMetrics(prometheus.NewRegistry()),
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitPinLegendaryUnlocks(t *testing.T) {
	svc := newGate(t, testSecrets)

	unlock, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "spotify", "2716")
	if err != nil {
		t.Fatalf("expected unlock, got %v", err)
	}
	if unlock.Action != ActionOpenLink || unlock.Link != "https://open.example/spotify" {
		t.Fatalf("unexpected unlock %+v", unlock)
	}
	if unlock.Credentials != nil {
		t.Fatalf("account unlock should not carry credentials")
	}
}

func TestSubmitPinWrongPinFails(t *testing.T) {
	svc := newGate(t, testSecrets)

	for _, pin := range []string{"0000", "", "5026", "27160", "2716 x"} {
		unlock, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "spotify", pin)
		if unlock != nil {
			t.Fatalf("pin %q leaked payload %+v", pin, unlock)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("pin %q: expected validation error, got %v", pin, err)
		}
		if typed.Message() != IncorrectPinMessage {
			t.Fatalf("pin %q: unexpected message %q", pin, typed.Message())
		}
		if !pkgerrors.MetadataFor(typed.Code()).Retryable {
			t.Fatalf("wrong pin must be retryable")
		}
	}
}

func TestSubmitPinRetryAfterFailureSucceeds(t *testing.T) {
	svc := newGate(t, testSecrets)
	ctx := context.Background()

	if _, err := svc.SubmitPin(ctx, enums.CatalogKindAccount, "vpn", "1111"); err == nil {
		t.Fatal("expected failure")
	}
	if _, err := svc.SubmitPin(ctx, enums.CatalogKindAccount, "vpn", "8293"); err != nil {
		t.Fatalf("expected retry to unlock, got %v", err)
	}
}

func TestSubmitPinGameRevealsCredentials(t *testing.T) {
	svc := newGate(t, testSecrets)

	unlock, err := svc.SubmitPin(context.Background(), enums.CatalogKindGame, "doom", "4617")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if unlock.Action != ActionRevealCredentials || unlock.Credentials == nil || unlock.Credentials.Username != "slayer" {
		t.Fatalf("unexpected unlock %+v", unlock)
	}
	if unlock.Link != "" {
		t.Fatalf("game unlock should not carry a link")
	}
}

func TestSubmitPinUnknownItem(t *testing.T) {
	svc := newGate(t, testSecrets)
	_, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "missing", "2716")
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitPinEveryTierOnlyOwnSecret(t *testing.T) {
	svc := newGate(t, testSecrets)
	ctx := context.Background()
	for tier, secret := range testSecrets {
		_, err := svc.SubmitPin(ctx, enums.CatalogKindAccount, "spotify", secret)
		if tier == "legendary" && err != nil {
			t.Fatalf("own secret rejected: %v", err)
		}
		if tier != "legendary" && err == nil {
			t.Fatalf("secret of %s unlocked a legendary item", tier)
		}
	}
}

var fastArgon = config.PasswordConfig{
	ArgonMemoryKB:    64,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func hashedSecrets(t *testing.T) map[string]string {
	t.Helper()
	raw := make(map[string]string, len(testSecrets))
	for tier, pin := range testSecrets {
		hashed, err := security.HashPassword(pin, fastArgon)
		if err != nil {
			t.Fatalf("hash %s: %v", tier, err)
		}
		raw[tier] = hashed
	}
	return raw
}

func TestSubmitPinWithHashedSecret(t *testing.T) {
	svc := newGate(t, hashedSecrets(t))
	if _, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "spotify", "2716"); err != nil {
		t.Fatalf("hashed secret rejected: %v", err)
	}
	if _, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "spotify", "0000"); err == nil {
		t.Fatal("hashed secret accepted wrong pin")
	}
	if _, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "spotify", "2716 "); err == nil {
		t.Fatal("hashed secret accepted padded pin")
	}
}

func TestSubmitPinRequiresExactMatch(t *testing.T) {
	svc := newGate(t, testSecrets)

	for _, pin := range []string{" 2716", "2716 ", "\t2716\n", " 2716 "} {
		unlock, err := svc.SubmitPin(context.Background(), enums.CatalogKindAccount, "spotify", pin)
		if unlock != nil {
			t.Fatalf("pin %q unlocked %+v", pin, unlock)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Message() != IncorrectPinMessage {
			t.Fatalf("pin %q: expected %q, got %v", pin, IncorrectPinMessage, err)
		}
	}
}

func TestParseSecretsRejectsMixedHashing(t *testing.T) {
	hashed, err := security.HashPassword("2716", fastArgon)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	raw := map[string]string{}
	for k, v := range testSecrets {
		raw[k] = v
	}
	raw["legendary"] = hashed
	if _, err := ParseSecrets(raw); err == nil {
		t.Fatal("expected mixed hashed and plaintext secrets to fail")
	}

	if _, err := ParseSecrets(hashedSecrets(t)); err != nil {
		t.Fatalf("fully hashed table rejected: %v", err)
	}
}

func TestParseSecretsValidation(t *testing.T) {
	missing := map[string]string{"mythic": "1"}
	if _, err := ParseSecrets(missing); err == nil {
		t.Fatal("expected missing tiers to fail")
	}

	dup := map[string]string{}
	for k, v := range testSecrets {
		dup[k] = v
	}
	dup["common"] = "5026"
	if _, err := ParseSecrets(dup); err == nil {
		t.Fatal("expected shared secret to fail")
	}

	bad := map[string]string{}
	for k, v := range testSecrets {
		bad[k] = v
	}
	bad["shiny"] = "9999"
	if _, err := ParseSecrets(bad); err == nil {
		t.Fatal("expected unknown tier to fail")
	}

	mixedCase := map[string]string{}
	for k, v := range testSecrets {
		mixedCase[k] = v
	}
	delete(mixedCase, "epic")
	mixedCase["EPIC"] = "4617"
	if _, err := ParseSecrets(mixedCase); err != nil {
		t.Fatalf("tier names should be case-insensitive: %v", err)
	}
}

func TestNewServiceRequiresCatalog(t *testing.T) {
	secrets, _ := ParseSecrets(testSecrets)
	if _, err := NewService(ServiceParams{Secrets: secrets}); err == nil {
		t.Fatal("expected error without catalog")
	}
}
