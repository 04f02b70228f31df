package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
)

func TestMidtransConfig_ValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  MidtransConfig
		wantErr bool
	}{
		{
			name:    "sandbox key",
			config:  MidtransConfig{ServerKey: "SB-Mid-server-test"},
			wantErr: false,
		},
		{
			name:    "production key",
			config:  MidtransConfig{ServerKey: "Mid-server-live", IsProduction: true},
			wantErr: false,
		},
		{
			name:    "missing server key",
			config:  MidtransConfig{},
			wantErr: true,
		},
		{
			name:    "sandbox key in production",
			config:  MidtransConfig{ServerKey: "SB-Mid-server-test", IsProduction: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateConfig()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRefundGateway(t *testing.T) {
	manual, err := NewRefundGateway("", MidtransConfig{})
	require.NoError(t, err)
	assert.Equal(t, "manual", manual.Name())

	mt, err := NewRefundGateway("Midtrans", MidtransConfig{ServerKey: "SB-Mid-server-test"})
	require.NoError(t, err)
	assert.Equal(t, "midtrans", mt.Name())

	_, err = NewRefundGateway("midtrans", MidtransConfig{})
	assert.Error(t, err)

	_, err = NewRefundGateway("stripe", MidtransConfig{})
	assert.Error(t, err)
}

func TestMidtransRefundNeedsOrderID(t *testing.T) {
	gw, err := NewMidtransRefundGateway(MidtransConfig{ServerKey: "SB-Mid-server-test"})
	require.NoError(t, err)

	_, err = gw.Refund(context.Background(), models.Payment{ID: 3, Amount: 10}, "x")
	assert.ErrorContains(t, err, "no midtrans order id")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gw.Refund(ctx, models.Payment{ID: 3, Amount: 10, ReferenceID: "ORDER-3"}, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManualRefundGateway(t *testing.T) {
	key, err := ManualRefundGateway{}.Refund(context.Background(), models.Payment{ID: 1, Amount: 15000}, "cancelled")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "MANUAL-"))
}
