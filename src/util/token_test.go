package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("s3cret", "dashboard", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("s3cret", token)
	require.NoError(t, err)
	require.Equal(t, "dashboard", claims.Subject)

	_, err = ParseToken("other", token)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken("s3cret", "dashboard", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("s3cret", token)
	require.Error(t, err)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	_, err := IssueToken("", "dashboard", time.Hour)
	require.Error(t, err)
}
