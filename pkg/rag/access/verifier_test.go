package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubChecker) HasFeature(context.Context, uuid.UUID, string) (bool, error) {
	s.calls++
	return s.allowed, s.err
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	acc := identity.Authenticated(uuid.New())

	t.Run("anonymous is allowed without lookup", func(t *testing.T) {
		c := &stubChecker{}
		v := NewVerifier(c, 0, logger.NewNopLogger())
		assert.NoError(t, v.Verify(ctx, identity.Anonymous(), FeatureChatbot))
		assert.Equal(t, 0, c.calls)
	})

	t.Run("enabled", func(t *testing.T) {
		v := NewVerifier(&stubChecker{allowed: true}, 0, logger.NewNopLogger())
		assert.NoError(t, v.Verify(ctx, acc, FeatureChatbot))
	})

	t.Run("disabled", func(t *testing.T) {
		v := NewVerifier(&stubChecker{allowed: false}, 0, logger.NewNopLogger())
		assert.ErrorIs(t, v.Verify(ctx, acc, FeatureChatbot), ErrFeatureDisabled)
	})

	t.Run("lookup failure fails open", func(t *testing.T) {
		v := NewVerifier(&stubChecker{err: errors.New("db down")}, 0, logger.NewNopLogger())
		assert.NoError(t, v.Verify(ctx, acc, FeatureChatbot))
	})

	t.Run("decisions are cached", func(t *testing.T) {
		c := &stubChecker{allowed: false}
		v := NewVerifier(c, time.Minute, logger.NewNopLogger())
		assert.Error(t, v.Verify(ctx, acc, FeatureChatbot))
		assert.Error(t, v.Verify(ctx, acc, FeatureChatbot))
		assert.Equal(t, 1, c.calls)
	})
}
