package services

import (
	"testing"

	"github.com/mitlacherp/local-contract-manager/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryEmitDedup(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db)

	inserted, err := svc.TryEmit(1, models.AlertExpiry, "expires soon")
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same pair again: skipped, not an error, no second row.
	inserted, err = svc.TryEmit(1, models.AlertExpiry, "expires soon")
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTryEmitDistinctPairs(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db)

	// Different type on the same contract and same type on a different
	// contract are both independent pairs.
	for _, emit := range []struct {
		contractID uint
		typ        models.AlertType
	}{
		{1, models.AlertExpiry},
		{1, models.AlertNotice},
		{2, models.AlertExpiry},
	} {
		inserted, err := svc.TryEmit(emit.contractID, emit.typ, "msg")
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestMarkReadResetsDedup(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db)
	admin := Viewer{UserID: 1, Role: models.RoleAdmin}

	inserted, err := svc.TryEmit(7, models.AlertExpiry, "first warning")
	require.NoError(t, err)
	require.True(t, inserted)

	var alert models.Alert
	require.NoError(t, db.First(&alert).Error)
	require.NoError(t, svc.MarkRead(alert.ID, admin))

	// The block is released: the next scan may raise a fresh alert for
	// the same pair while the read one stays in history.
	inserted, err = svc.TryEmit(7, models.AlertExpiry, "second warning")
	require.NoError(t, err)
	assert.True(t, inserted)

	var total, unread int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&total).Error)
	require.NoError(t, db.Model(&models.Alert{}).Where("is_read = ?", false).Count(&unread).Error)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 1, unread)
}

func TestHasUnread(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db)
	admin := Viewer{UserID: 1, Role: models.RoleAdmin}

	ok, err := svc.HasUnread(3, models.AlertNotice)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.TryEmit(3, models.AlertNotice, "notice")
	require.NoError(t, err)

	ok, err = svc.HasUnread(3, models.AlertNotice)
	require.NoError(t, err)
	assert.True(t, ok)

	var alert models.Alert
	require.NoError(t, db.First(&alert).Error)
	require.NoError(t, svc.MarkRead(alert.ID, admin))

	ok, err = svc.HasUnread(3, models.AlertNotice)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMarkReadUnknownAlert(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db)

	err := svc.MarkRead(999, Viewer{UserID: 1, Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrAlertNotFound)
}
