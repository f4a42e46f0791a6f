package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(ttl time.Duration) *Codec {
	return NewCodec([]byte("test-jwt-secret"), ttl)
}

func TestCodec_IssueDecode_Roundtrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(time.Hour)
	now := time.Now().UTC()

	token, err := codec.Issue("student@example.com", RoleStudent, now)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token, now.Add(time.Second))
	require.NoError(t, err)

	assert.Equal(t, "student@example.com", claims.Subject)
	assert.Equal(t, string(RoleStudent), claims.Role)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestCodec_Decode_ExpiredToken(t *testing.T) {
	t.Parallel()

	ttl := 15 * time.Minute
	codec := newTestCodec(ttl)
	now := time.Now().UTC()

	token, err := codec.Issue("student@example.com", RoleStudent, now)
	require.NoError(t, err)

	_, err = codec.Decode(token, now.Add(ttl+time.Second))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	token, err := newTestCodec(time.Hour).Issue("student@example.com", RoleAdmin, now)
	require.NoError(t, err)

	other := NewCodec([]byte("another-secret"), time.Hour)
	_, err = other.Decode(token, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(time.Hour)
	now := time.Now().UTC()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := codec.Decode(tt.token, now)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestCodec_Decode_TamperedToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(time.Hour)
	now := time.Now().UTC()

	token, err := codec.Issue("student@example.com", RoleStudent, now)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = codec.Decode(tampered, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, err := ParseRole("STUDENT")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, role)

	role, err = ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("SUPERUSER")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseRole("student")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
