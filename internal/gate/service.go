package gate

import (
	"context"
	"fmt"

	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/logger"
	"github.com/nexvault/storefront-backend/pkg/metrics"
	"github.com/nexvault/storefront-backend/pkg/security"
)

// IncorrectPinMessage is shown to the client after a failed unlock.
const IncorrectPinMessage = "Incorrect pin."

type Action string

const (
	ActionOpenLink          Action = "open_link"
	ActionRevealCredentials Action = "reveal_credentials"
)

// Unlock is the gated payload released after a correct PIN.
type Unlock struct {
	ItemID      string               `json:"item_id"`
	Kind        enums.CatalogKind    `json:"kind"`
	Action      Action               `json:"action"`
	Link        string               `json:"link,omitempty"`
	Credentials *catalog.Credentials `json:"credentials,omitempty"`
}

// Service verifies PIN submissions against the rarity secret table.
type Service interface {
	SubmitPin(ctx context.Context, kind enums.CatalogKind, itemID, candidate string) (*Unlock, error)
}

type ServiceParams struct {
	Catalog catalog.Service
	Secrets Secrets
	Metrics *metrics.GateMetrics
	Logger  *logger.Logger
}

type service struct {
	catalog catalog.Service
	secrets Secrets
	metrics *metrics.GateMetrics
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if err := params.Secrets.Validate(); err != nil {
		return nil, err
	}
	return &service{
		catalog: params.Catalog,
		secrets: params.Secrets,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

func (s *service) SubmitPin(ctx context.Context, kind enums.CatalogKind, itemID, candidate string) (*Unlock, error) {
	item, err := s.catalog.Get(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}

	secret, ok := s.secrets.For(item.Rarity)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("no secret for tier %s", item.Rarity))
	}

	match, err := security.MatchSecret(candidate, secret)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify pin")
	}
	if !match {
		s.metrics.Inc(string(kind), string(item.Rarity), metrics.OutcomeDenied)
		if s.logg != nil {
			s.logg.Info(s.logg.WithFields(ctx, map[string]any{
				"item":   item.Ref(),
				"rarity": item.Rarity.String(),
			}), "gate.unlock_denied")
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, IncorrectPinMessage)
	}

	s.metrics.Inc(string(kind), string(item.Rarity), metrics.OutcomeSuccess)
	return unlockFor(item), nil
}

func unlockFor(item catalog.Item) *Unlock {
	unlock := &Unlock{ItemID: item.ID, Kind: item.Kind}
	if item.Kind == enums.CatalogKindGame && item.Credentials != nil {
		creds := *item.Credentials
		unlock.Action = ActionRevealCredentials
		unlock.Credentials = &creds
		return unlock
	}
	unlock.Action = ActionOpenLink
	unlock.Link = item.ExternalLink
	return unlock
}
