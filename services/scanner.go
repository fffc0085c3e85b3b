package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"
)

// SnapshotProvider hands the scan its working set. Status is resolved at
// call time; the scanner never caches contracts between passes.
type SnapshotProvider interface {
	ListActiveContracts() ([]models.Contract, error)
}

// AlertEmitter is the write half of the ledger as the scan sees it.
type AlertEmitter interface {
	TryEmit(contractID uint, alertType models.AlertType, message string) (bool, error)
}

// ScanSummary is what one pass reports to the log. Errors counts
// contracts whose emission failed; those contracts are simply retried by
// the next pass since the ledger is the only carried state.
// SnapshotFailed marks the pass-level outcome where no contract could be
// fetched at all, which is a different operational signal than a few
// isolated emit failures.
type ScanSummary struct {
	Scanned        int
	Emitted        int
	Skipped        int
	Errors         int
	SnapshotFailed bool
}

// Scanner runs the daily compliance pass. The clock is injected so
// tests can pin "today"; production passes time.Now.
type Scanner struct {
	snapshots SnapshotProvider
	emitter   AlertEmitter
	now       func() time.Time
	scanHour  int // local wall-clock hour of the daily run

	scanning atomic.Bool
}

func NewScanner(snapshots SnapshotProvider, emitter AlertEmitter, now func() time.Time, scanHour int) *Scanner {
	if now == nil {
		now = time.Now
	}
	return &Scanner{snapshots: snapshots, emitter: emitter, now: now, scanHour: scanHour}
}

// Start blocks until ctx is cancelled, firing one scan per day at the
// configured hour. A fire that arrives while a scan is still running is
// dropped, never queued. An in-flight scan finishes its current contract
// set before Start returns.
func (s *Scanner) Start(ctx context.Context) {
	for {
		wait := s.nextRun().Sub(s.now())
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("[Scan] scheduler stopped")
			return
		case <-timer.C:
			switch summary, ran := s.RunScan(); {
			case !ran:
				log.Printf("[Scan] tick coalesced: previous pass still running")
			case summary.SnapshotFailed:
				// already logged by RunScan; retried next period
			default:
				log.Printf("[Scan] pass complete: scanned=%d emitted=%d skipped=%d errors=%d",
					summary.Scanned, summary.Emitted, summary.Skipped, summary.Errors)
			}
		}
	}
}

func (s *Scanner) nextRun() time.Time {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.scanHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunScan executes one pass unless another is already in flight, in
// which case it reports ran=false. Manual triggers and the timer share
// this guard, so on-demand runs obey the same no-overlap rule.
func (s *Scanner) RunScan() (ScanSummary, bool) {
	if !s.scanning.CompareAndSwap(false, true) {
		return ScanSummary{}, false
	}
	defer s.scanning.Store(false)

	var summary ScanSummary

	contracts, err := s.snapshots.ListActiveContracts()
	if err != nil {
		log.Printf("[Scan] pass abandoned: snapshot fetch failed: %v", err)
		summary.SnapshotFailed = true
		return summary, true
	}

	now := s.now()
	for i := range contracts {
		c := &contracts[i]
		summary.Scanned++

		// One contract's ledger failure must not starve the rest of
		// the batch; it is logged and retried next pass.
		for _, cand := range EvaluateTriggers(c, now) {
			inserted, err := s.emitter.TryEmit(cand.ContractID, cand.Type, cand.Message)
			if err != nil {
				log.Printf("[Scan] emit failed for contract %d (%s): %v", cand.ContractID, cand.Type, err)
				summary.Errors++
				continue
			}
			if inserted {
				log.Printf("[Alert] %s alert raised for contract %d", cand.Type, cand.ContractID)
				summary.Emitted++
			} else {
				summary.Skipped++
			}
		}
	}

	return summary, true
}
