package tokenx

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	codec, err := NewCodec([]byte("test-secret-key"), time.Hour)
	require.NoError(t, err)
	return codec
}

func TestNewCodec_EmptySecret(t *testing.T) {
	_, err := NewCodec(nil, time.Hour)
	require.Error(t, err)
}

func TestNewCodec_DefaultTTL(t *testing.T) {
	codec, err := NewCodec([]byte("secret"), 0)
	require.NoError(t, err)
	require.Equal(t, DefaultAccessTokenTTL, codec.TTL())
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now().UTC()

	token, err := codec.Issue(42, "a@b.com", now)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3, "JWT should have three segments")

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
	require.WithinDuration(t, now, claims.IssuedAt.Time, 2*time.Second)
}

func TestCodec_Issue_SameSecondTokensDiffer(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now().UTC()

	// Same user, same instant: the jti must still make each token unique.
	first, err := codec.Issue(42, "a@b.com", now)
	require.NoError(t, err)
	second, err := codec.Issue(42, "a@b.com", now)
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	firstClaims, err := codec.Verify(first)
	require.NoError(t, err)
	secondClaims, err := codec.Verify(second)
	require.NoError(t, err)

	require.NotEmpty(t, firstClaims.ID)
	require.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue(1, "a@b.com", time.Now().UTC())
	require.NoError(t, err)

	other, err := NewCodec([]byte("a-different-secret"), time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestCodec_Verify_TamperedPayload(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue(1, "a@b.com", time.Now().UTC())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	forged := strings.Replace(string(payload), "a@b.com", "x@y.com", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = codec.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := newTestCodec(t)

	// Issued two hours in the past against a one-hour TTL.
	token, err := codec.Issue(1, "a@b.com", time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aGVhZGVy.cGF5bG9hZA"},
		{"four segments", "a.b.c.d"},
		{"bad base64", "!!.!!.!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCodec_Verify_NoneAlgorithmRejected(t *testing.T) {
	codec := newTestCodec(t)

	// {"alg":"none","typ":"JWT"} with an empty signature segment.
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"user_id":1,"email":"a@b.com","exp":9999999999}`))

	_, err := codec.Verify(header + "." + payload + ".")
	require.Error(t, err)
}
