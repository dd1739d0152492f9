package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, parseLevel(tc.in), "level %q", tc.in)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	l := New("info")
	ctx := IntoContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))

	// Without a bound logger the default logger comes back.
	require.NotNil(t, FromContext(context.Background()))
}
