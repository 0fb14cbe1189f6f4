package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_DropsIrrelevantFieldsInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	base := &logger{entry: L.(*logger).entry}

	filtered := base.WithFields(Fields{"user_agent": "curl"}).(*logger)
	assert.Same(t, base, filtered)

	kept := base.WithFields(Fields{"session_id": "abc", "user_agent": "curl"}).(*logger)
	assert.Equal(t, "abc", kept.entry.Data["session_id"])
	assert.NotContains(t, kept.entry.Data, "user_agent")
}

func TestWithFields_KeepsAllFieldsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	base := &logger{entry: L.(*logger).entry}

	kept := base.WithFields(Fields{"user_agent": "curl"}).(*logger)
	assert.Equal(t, "curl", kept.entry.Data["user_agent"])
}
