package services

import (
	"testing"
	"time"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestValidateNotExpired(t *testing.T) {
	expiration := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		expiration   *time.Time
		now          time.Time
		allowExpired bool
		wantErr      bool
	}{
		{name: "before expiration", expiration: &expiration, now: expiration.Add(-time.Hour)},
		{name: "exactly at expiration is still valid", expiration: &expiration, now: expiration},
		{name: "after expiration", expiration: &expiration, now: expiration.Add(time.Nanosecond), wantErr: true},
		{name: "nil expiration never expires", expiration: nil, now: expiration.Add(100 * 365 * 24 * time.Hour)},
		{name: "allowExpired skips the check", expiration: &expiration, now: expiration.Add(time.Hour), allowExpired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := models.Link{ExpirationDate: tt.expiration}
			err := ValidateNotExpired(&link, tt.now, tt.allowExpired)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateOwner(t *testing.T) {
	tests := []struct {
		name     string
		ownerID  *uint
		viewerID *uint
		wantErr  bool
	}{
		{name: "owner matches", ownerID: uintPtr(7), viewerID: uintPtr(7)},
		{name: "different user", ownerID: uintPtr(7), viewerID: uintPtr(8), wantErr: true},
		{name: "anonymous viewer is never owner", ownerID: uintPtr(7), viewerID: nil, wantErr: true},
		{name: "anonymous link has no owner", ownerID: nil, viewerID: uintPtr(7), wantErr: true},
		{name: "anonymous viewer of anonymous link", ownerID: nil, viewerID: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := models.Link{OwnerID: tt.ownerID}
			err := ValidateOwner(&link, tt.viewerID)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStatsVisible(t *testing.T) {
	publicLink := models.Link{StatsIsPublic: true, OwnerID: uintPtr(7)}
	privateLink := models.Link{StatsIsPublic: false, OwnerID: uintPtr(7)}

	assert.True(t, StatsVisible(&publicLink, nil))
	assert.True(t, StatsVisible(&publicLink, uintPtr(8)))
	assert.True(t, StatsVisible(&privateLink, uintPtr(7)))
	assert.False(t, StatsVisible(&privateLink, uintPtr(8)))
	assert.False(t, StatsVisible(&privateLink, nil))
}
