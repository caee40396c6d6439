package access

import (
	"context"
	"errors"
	"time"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/identity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const FeatureChatbot = "chatbot"

// ErrFeatureDisabled is returned when an account's plan lacks a feature
var ErrFeatureDisabled = errors.New("feature not available on the current plan")

// FeatureChecker answers whether an account's plan includes a feature
type FeatureChecker interface {
	HasFeature(ctx context.Context, accountID uuid.UUID, feature string) (bool, error)
}

// Verifier gates features per account. Lookup failures fail open so a billing
// outage never silences the chatbot.
type Verifier struct {
	checker FeatureChecker
	cache   *cache.Cache
	logger  logger.ILogger
}

// NewVerifier creates a new access verifier. Decisions are cached for ttl;
// zero disables caching.
func NewVerifier(checker FeatureChecker, ttl time.Duration, log logger.ILogger) *Verifier {
	v := &Verifier{checker: checker, logger: log}
	if ttl > 0 {
		v.cache = cache.New(ttl, 2*ttl)
	}
	return v
}

// Verify returns ErrFeatureDisabled when the account may not use feature.
// Anonymous traffic is the public demo and is always allowed.
func (v *Verifier) Verify(ctx context.Context, account identity.Account, feature string) error {
	accountID, ok := account.ID()
	if !ok {
		return nil
	}

	key := accountID.String() + ":" + feature
	if v.cache != nil {
		if allowed, found := v.cache.Get(key); found {
			return decision(allowed.(bool))
		}
	}

	allowed, err := v.checker.HasFeature(ctx, accountID, feature)
	if err != nil {
		v.logger.Warn("ACCESS", "Capability lookup failed, allowing", map[string]interface{}{
			"account_id": accountID.String(),
			"feature":    feature,
			"error":      err.Error(),
		})
		return nil
	}

	if v.cache != nil {
		v.cache.SetDefault(key, allowed)
	}
	return decision(allowed)
}

func decision(allowed bool) error {
	if allowed {
		return nil
	}
	return ErrFeatureDisabled
}
