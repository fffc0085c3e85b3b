package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// seedContract writes an active contract ending the given number of days
// after the pinned scan time.
func seedContract(t *testing.T, db *gorm.DB, title string, owner uint, daysToEnd, noticeDays int) uint {
	t.Helper()
	end := scanTime.AddDate(0, 0, daysToEnd)
	c := models.Contract{
		Title:            title,
		PartnerName:      "ACME GmbH",
		EndDate:          &end,
		NoticePeriodDays: noticeDays,
		Status:           models.ContractActive,
		CreatedBy:        owner,
	}
	mustCreate(t, db, &c)
	return c.ID
}

func newTestScanner(db *gorm.DB) *Scanner {
	return NewScanner(NewContractService(db), NewAlertService(db), fixedClock(scanTime), 8)
}

func TestScanEmitsForDueContracts(t *testing.T) {
	db := newTestDB(t)
	seedContract(t, db, "Hosting", 1, 30, 0)       // expiry only
	seedContract(t, db, "Cleaning", 1, 10, 5)      // notice only (end inside window too)
	seedContract(t, db, "Far Future", 1, 400, 0)   // nothing due

	summary, ran := newTestScanner(db).RunScan()
	require.True(t, ran)
	assert.Equal(t, 3, summary.Scanned)
	assert.Equal(t, 3, summary.Emitted) // Hosting expiry + Cleaning expiry + Cleaning notice
	assert.Equal(t, 0, summary.Errors)
}

func TestScanIgnoresInactiveContracts(t *testing.T) {
	db := newTestDB(t)
	end := scanTime.AddDate(0, 0, 30)
	for _, status := range []models.ContractStatus{models.ContractDraft, models.ContractTerminated, models.ContractExpired} {
		c := models.Contract{Title: string(status), EndDate: &end, Status: status, CreatedBy: 1}
		mustCreate(t, db, &c)
	}

	summary, ran := newTestScanner(db).RunScan()
	require.True(t, ran)
	assert.Equal(t, 0, summary.Scanned)
	assert.Equal(t, 0, summary.Emitted)
}

func TestScanIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedContract(t, db, "Hosting", 1, 30, 0)
	scanner := newTestScanner(db)

	first, ran := scanner.RunScan()
	require.True(t, ran)
	assert.Equal(t, 1, first.Emitted)

	// Immediate rerun with no intervening markRead: same alert set.
	second, ran := scanner.RunScan()
	require.True(t, ran)
	assert.Equal(t, 0, second.Emitted)
	assert.Equal(t, 1, second.Skipped)

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestScanRefiresAfterMarkRead(t *testing.T) {
	db := newTestDB(t)
	seedContract(t, db, "Hosting", 1, 30, 0)
	scanner := newTestScanner(db)
	alerts := NewAlertService(db)

	_, _ = scanner.RunScan()

	var alert models.Alert
	require.NoError(t, db.First(&alert).Error)
	require.NoError(t, alerts.MarkRead(alert.ID, Viewer{UserID: 1, Role: models.RoleAdmin}))

	summary, ran := scanner.RunScan()
	require.True(t, ran)
	assert.Equal(t, 1, summary.Emitted)
}

func TestScanCoalescesOverlappingRuns(t *testing.T) {
	db := newTestDB(t)
	scanner := newTestScanner(db)

	// Hold the scanning flag as a long-running pass would.
	require.True(t, scanner.scanning.CompareAndSwap(false, true))
	_, ran := scanner.RunScan()
	assert.False(t, ran, "a tick during a running scan must be dropped")
	scanner.scanning.Store(false)

	_, ran = scanner.RunScan()
	assert.True(t, ran)
}

func TestConcurrentScannersEmitOnce(t *testing.T) {
	db := newTestDB(t)
	seedContract(t, db, "Hosting", 1, 30, 0)
	seedContract(t, db, "Cleaning", 2, 40, 0)

	// Two scanner instances sharing one ledger model two server
	// processes; the partial unique index is the only arbiter.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		scanner := newTestScanner(db)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = scanner.RunScan()
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Where("is_read = ?", false).Count(&count).Error)
	assert.EqualValues(t, 2, count, "exactly one unread alert per (contract, type)")
}

type failingEmitter struct {
	calls int
}

func (f *failingEmitter) TryEmit(contractID uint, alertType models.AlertType, message string) (bool, error) {
	f.calls++
	if contractID%2 == 1 {
		return false, errors.New("ledger unavailable")
	}
	return true, nil
}

func TestScanIsolatesEmitFailures(t *testing.T) {
	db := newTestDB(t)
	id1 := seedContract(t, db, "Odd", 1, 30, 0)
	seedContract(t, db, "Even", 1, 40, 0)
	require.EqualValues(t, 1, id1%2, "test relies on the first id being odd")

	emitter := &failingEmitter{}
	scanner := NewScanner(NewContractService(db), emitter, fixedClock(scanTime), 8)

	summary, ran := scanner.RunScan()
	require.True(t, ran)
	assert.Equal(t, 2, summary.Scanned, "a failing contract must not abort the batch")
	assert.Equal(t, 1, summary.Emitted)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 2, emitter.calls)
}

type failingSnapshots struct{}

func (failingSnapshots) ListActiveContracts() ([]models.Contract, error) {
	return nil, errors.New("database gone")
}

func TestScanSurvivesSnapshotFailure(t *testing.T) {
	scanner := NewScanner(failingSnapshots{}, &failingEmitter{}, fixedClock(scanTime), 8)
	summary, ran := scanner.RunScan()
	require.True(t, ran)

	// A lost pass is reported as such, not mixed into the per-contract
	// error count, and the scanner stays usable for the next period.
	assert.True(t, summary.SnapshotFailed)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, 0, summary.Scanned)

	_, ran = scanner.RunScan()
	assert.True(t, ran)
}

func TestStartReturnsOnContextCancel(t *testing.T) {
	scanner := newTestScanner(newTestDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scanner.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestNextRunSchedule(t *testing.T) {
	// 09:30 with a 08:00 scan hour: next run is tomorrow 08:00.
	s := NewScanner(failingSnapshots{}, &failingEmitter{}, fixedClock(scanTime), 8)
	next := s.nextRun()
	assert.Equal(t, time.Date(2026, time.March, 16, 8, 0, 0, 0, time.UTC), next)

	// 06:00 the same day: today 08:00.
	early := time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)
	s = NewScanner(failingSnapshots{}, &failingEmitter{}, fixedClock(early), 8)
	assert.Equal(t, time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC), s.nextRun())
}
