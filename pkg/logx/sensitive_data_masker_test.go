package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tg_escrow/pkg/logx"
)

func TestSensitiveDataMasker(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "requisites field",
			input:    `{"id":"A1B2C3D4","requisites":"2200 7001 2345 6789"}`,
			expected: `{"id":"A1B2C3D4","requisites":"[MASKED]"}`,
		},
		{
			name:     "instructions field",
			input:    `{"instructions": "@seller_wallet"}`,
			expected: `{"instructions": "[MASKED]"}`,
		},
		{
			name:     "bot token in url",
			input:    `https://api.telegram.org/bot8520179075:AAEgMESOlGJQeeAOY5kRs/sendMessage`,
			expected: `https://api.telegram.org/bot[MASKED]/sendMessage`,
		},
		{
			name:     "nothing sensitive",
			input:    `{"id":"A1B2C3D4","item":"Gift Card","price":500}`,
			expected: `{"id":"A1B2C3D4","item":"Gift Card","price":500}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.expected, string(masker.Mask([]byte(tc.input))))
		})
	}
}

func TestNopSensitiveDataMasker(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewNopSensitiveDataMasker()

	input := `{"requisites":"2200 7001 2345 6789"}`
	rq.Equal(input, string(masker.Mask([]byte(input))))
}
