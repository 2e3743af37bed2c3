// Package metrics defines all custom Prometheus metrics for the lending
// service. It is the single source of truth for metric names, labels, and
// help strings; everything registers against the default registry via
// promauto at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lending"

// LoansBorrowedTotal counts successfully opened loans.
var LoansBorrowedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_borrowed_total",
		Help:      "Total number of books borrowed.",
	},
)

// LoansReturnedTotal counts successfully closed loans.
var LoansReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of books returned.",
	},
)

// BorrowRejectionsTotal counts refused borrow attempts.
// Label:
//   - reason: "not_found", "already_borrowed", "not_logged_in",
//     "limit_reached", "invalid_argument", or "internal"
var BorrowRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrow_rejections_total",
		Help:      "Total number of borrow attempts refused, by reason.",
	},
	[]string{"reason"},
)

// ActiveLoans tracks the number of currently open loans.
var ActiveLoans = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_loans",
		Help:      "Number of loans currently open.",
	},
)

// UsersRegisteredTotal counts completed member registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of members registered.",
	},
)

// BooksAddedTotal counts catalog entries created.
var BooksAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_added_total",
		Help:      "Total number of books added to the catalog.",
	},
)
