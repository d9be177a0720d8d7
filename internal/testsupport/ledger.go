package testsupport

import (
	"testing"

	"phangs2caom2/internal/config"
	"phangs2caom2/internal/ledger"
)

// MustOpenLedger opens the ledger configured in cfg and closes it at cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(cfg.Paths.LedgerPath)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
