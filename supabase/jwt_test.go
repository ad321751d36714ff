package supabase

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestUserIDFromToken(t *testing.T) {
	token, err := GenerateTestJWT("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	sub, err := UserIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	_, err = UserIDFromToken(token, "other-secret")
	assert.Error(t, err, "a token signed with another secret is rejected")

	sub, err = UserIDFromToken(token, "")
	require.NoError(t, err, "without a secret the token is only decoded")
	assert.Equal(t, "user-1", sub)
}

func TestUserIDFromTokenExpired(t *testing.T) {
	token, err := GenerateTestJWT("user-1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, testSecret)
	assert.Error(t, err)
}

func TestUserIDFromTokenMissingSub(t *testing.T) {
	token, err := GenerateTestJWT("", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, testSecret)
	assert.ErrorContains(t, err, "missing sub")
}

func TestUserIDFromRequest(t *testing.T) {
	token, err := GenerateTestJWT("user-2", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer", "Bearer " + token, "user-2", false},
		{"missing", "", "", true},
		{"empty bearer", "Bearer ", "", true},
		{"garbage", "Bearer not-a-jwt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/sessions", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := UserIDFromRequest(r, testSecret)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
