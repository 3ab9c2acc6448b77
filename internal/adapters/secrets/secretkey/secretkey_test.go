package secretkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"walletwise://personal/token":   "walletwise/personal/token",
		" walletwise://work/session ":   "walletwise/work/session",
		"custom/profile/token":          "custom/profile/token",
		"walletwise://nested//x/./y":    "walletwise/nested/x/y",
	}
	for key, want := range valid {
		got, err := Entry(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestEntryRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "scheme only", key: "walletwise://", wantErr: "invalid secret key"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "traversal after scheme", key: "walletwise://../../etc", wantErr: "invalid secret key"},
		{name: "backslash", key: `walletwise://a\b`, wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Entry(tc.key)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
