package hyperliquid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Env
		wantErr bool
	}{
		{name: "dev", input: "dev", want: EnvDev},
		{name: "prod", input: "prod", want: EnvProd},
		{name: "uppercase", input: "PROD", want: EnvProd},
		{name: "mixed case", input: "Dev", want: EnvDev},
		{name: "unknown", input: "staging", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEnv(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvURLs(t *testing.T) {
	assert.Equal(t, "https://api.hyperliquid-testnet.xyz", EnvDev.APIURL())
	assert.Equal(t, "https://api.hyperliquid.xyz", EnvProd.APIURL())
	assert.Equal(t, "wss://api.hyperliquid-testnet.xyz/ws", EnvDev.WSURL())
	assert.Equal(t, "wss://api.hyperliquid.xyz/ws", EnvProd.WSURL())
}
