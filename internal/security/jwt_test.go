package security

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseRoundtrip(t *testing.T) {
	m := NewJWTManager("test-signing-key", time.Minute, time.Hour)
	uid := uuid.New()

	tokens, refreshClaims, err := m.Issue("admin", uid)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "admin", tokens.Role)
	assert.Equal(t, int64(60), tokens.ExpiresIn)
	assert.NotEmpty(t, refreshClaims.ID)

	gotID, gotRole, err := m.ParseAccess(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uid, gotID)
	assert.Equal(t, "admin", gotRole)

	parsed, err := m.ParseRefresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, refreshClaims.ID, parsed.ID)
	assert.Equal(t, uid.String(), parsed.UserID)
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	m := NewJWTManager("test-signing-key", time.Minute, time.Hour)
	tokens, _, err := m.Issue("admin", uuid.New())
	require.NoError(t, err)

	_, err = m.ParseRefresh(tokens.AccessToken)
	assert.Error(t, err)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	m := NewJWTManager("test-signing-key", time.Minute, time.Hour)
	tokens, _, err := m.Issue("admin", uuid.New())
	require.NoError(t, err)

	_, _, err = m.ParseAccess(tokens.RefreshToken)
	assert.Error(t, err)
}

func TestParseAccessRejectsWrongKey(t *testing.T) {
	uid := uuid.New()
	tokens, _, err := NewJWTManager("key-one", time.Minute, time.Hour).Issue("staff", uid)
	require.NoError(t, err)

	_, _, err = NewJWTManager("key-two", time.Minute, time.Hour).ParseAccess(tokens.AccessToken)
	assert.Error(t, err)
}

func TestParseAccessRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-signing-key", -time.Minute, time.Hour)
	tokens, _, err := m.Issue("staff", uuid.New())
	require.NoError(t, err)

	_, _, err = m.ParseAccess(tokens.AccessToken)
	assert.Error(t, err)
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-signing-key", time.Minute, time.Hour)
	_, _, err := m.ParseAccess("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenAdapter(t *testing.T) {
	m := NewJWTManager("test-signing-key", time.Minute, time.Hour)
	uid := uuid.New()
	tokens, _, err := m.Issue("staff", uid)
	require.NoError(t, err)

	gotID, gotRole, err := m.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uid.String(), gotID)
	assert.Equal(t, "staff", gotRole)
}
