package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DailySubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planloop_daily_submissions_total",
		Help: "Number of daily records finalized.",
	})

	DailyAutosaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planloop_daily_autosaves_total",
		Help: "Number of autosave upserts.",
	})

	LedgerPayments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planloop_ledger_payments_total",
		Help: "Number of payments applied to money tracker entries.",
	})

	BulkImportedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planloop_bulk_imported_rows_total",
		Help: "Rows inserted via bulk import, per collection.",
	}, []string{"collection"})
)
