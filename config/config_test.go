package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInventory(t *testing.T) {
	raw := []byte(`
tables:
  - number: "A1"
    capacity: 2
    position: "Window"
  - number: "A2"
    capacity: 8
    position: "VIP Room"
priority:
  vip_bonus: 70
`)
	inv, err := ParseInventory(raw)
	require.NoError(t, err)
	require.Len(t, inv.Tables, 2)
	assert.Equal(t, "A2", inv.Tables[1].Number)
	assert.Equal(t, 8, inv.Tables[1].Capacity)
	assert.Equal(t, 70, inv.Priority.VIPBonus)
	assert.Zero(t, inv.Priority.WaitCap)
}

func TestParseInventoryRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing number", "tables:\n  - capacity: 2\n"},
		{"zero capacity", "tables:\n  - number: \"A1\"\n    capacity: 0\n"},
		{"duplicate number", "tables:\n  - number: \"A1\"\n    capacity: 2\n  - number: \"A1\"\n    capacity: 4\n"},
		{"not yaml", "tables: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInventory([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadInventoryShippedFile(t *testing.T) {
	inv, err := LoadInventory("inventory.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, inv.Tables)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REFUND_RETRY_INTERVAL", "90")
	t.Setenv("PORT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "manual", cfg.PaymentGateway)
	assert.Equal(t, 90*time.Second, cfg.RefundRetryInterval)
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestValidateRelease(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"debug without secret", Config{GinMode: "debug"}, false},
		{"release without secret", Config{GinMode: "release"}, true},
		{"release with blank secret", Config{GinMode: "release", JWTSecret: "   "}, true},
		{"release with secret", Config{GinMode: "release", JWTSecret: "s3cret"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorContains(t, err, "JWT_SECRET")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
