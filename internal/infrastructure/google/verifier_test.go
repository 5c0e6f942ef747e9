package google

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/go-notes-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_MalformedTokenIsRejection(t *testing.T) {
	v := NewVerifier("client-id")

	_, err := v.Verify(context.Background(), "not-a-jwt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestIsTransportErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"url error", &url.Error{Op: "Get", URL: "https://www.googleapis.com", Err: errors.New("connection refused")}, true},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, true},
		{"bad signature", errors.New("idtoken: could not find matching cert"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTransportErr(tc.err))
		})
	}
}
