package identity

import (
	"testing"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnterprise(t *testing.T) {
	tests := []struct {
		name         string
		taxID        string
		socialReason string
		subdomain    string
		wantErr      bool
		errCode      string
	}{
		{
			name:         "valid enterprise",
			taxID:        "20123456789",
			socialReason: "Comercial Los Andes S.A.C.",
			subdomain:    "losandes",
			wantErr:      false,
		},
		{
			name:         "tax id too short",
			taxID:        "2012345",
			socialReason: "Comercial Los Andes S.A.C.",
			subdomain:    "losandes",
			wantErr:      true,
			errCode:      "INVALID_TAX_ID",
		},
		{
			name:         "tax id with letters",
			taxID:        "20123A56789",
			socialReason: "Comercial Los Andes S.A.C.",
			subdomain:    "losandes",
			wantErr:      true,
			errCode:      "INVALID_TAX_ID",
		},
		{
			name:         "empty social reason",
			taxID:        "20123456789",
			socialReason: "  ",
			subdomain:    "losandes",
			wantErr:      true,
			errCode:      "INVALID_SOCIAL_REASON",
		},
		{
			name:         "subdomain with invalid chars",
			taxID:        "20123456789",
			socialReason: "Comercial Los Andes S.A.C.",
			subdomain:    "los_andes!",
			wantErr:      true,
			errCode:      "INVALID_SUBDOMAIN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enterprise, err := NewEnterprise(tt.taxID, tt.socialReason, tt.subdomain)

			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.errCode, domainErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, EnterpriseStatusActivating, enterprise.Status)
			assert.False(t, enterprise.Settings.UseStock)
			assert.False(t, enterprise.Settings.DropshippingEnabled)
			assert.Len(t, enterprise.DomainEvents(), 1)
			assert.Equal(t, EventTypeEnterpriseRegistered, enterprise.DomainEvents()[0].EventType())
		})
	}
}

func TestEnterpriseActivate(t *testing.T) {
	enterprise, err := NewEnterprise("20123456789", "Comercial Los Andes S.A.C.", "losandes")
	require.NoError(t, err)

	require.NoError(t, enterprise.Activate())
	assert.Equal(t, EnterpriseStatusActive, enterprise.Status)
	assert.NotNil(t, enterprise.ActivatedAt)
	assert.True(t, enterprise.IsActive())

	err = enterprise.Activate()
	assert.True(t, shared.IsKind(err, shared.KindPrecondition))
}

func TestEnterpriseDeactivate(t *testing.T) {
	enterprise, err := NewEnterprise("20123456789", "Comercial Los Andes S.A.C.", "losandes")
	require.NoError(t, err)
	require.NoError(t, enterprise.Activate())

	require.NoError(t, enterprise.Deactivate())
	assert.False(t, enterprise.IsActive())

	err = enterprise.Deactivate()
	assert.Error(t, err)
}

func TestEnterpriseUpdateSettings(t *testing.T) {
	enterprise, err := NewEnterprise("20123456789", "Comercial Los Andes S.A.C.", "losandes")
	require.NoError(t, err)
	enterprise.ClearDomainEvents()
	previousVersion := enterprise.Version

	enterprise.UpdateSettings(EnterpriseSettings{UseStock: true, DropshippingEnabled: true})

	assert.True(t, enterprise.Settings.UseStock)
	assert.True(t, enterprise.Settings.DropshippingEnabled)
	assert.Equal(t, previousVersion+1, enterprise.Version)
	require.Len(t, enterprise.DomainEvents(), 1)
	assert.Equal(t, EventTypeEnterpriseSettingsChanged, enterprise.DomainEvents()[0].EventType())
}
