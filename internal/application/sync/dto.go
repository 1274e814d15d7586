package sync

import "time"

// OrderSyncResult reports the outcome of one sync run
type OrderSyncResult struct {
	// Synced is the number of new orders imported this run
	Synced int
	// Skipped is the number of fetched orders that already existed locally
	Skipped int
	// NotificationsSent is the number of new-order notifications delivered
	NotificationsSent int
	// Total is the storefront's total order count for the query window
	Total int64
	// StartedAt and FinishedAt bound the run
	StartedAt  time.Time
	FinishedAt time.Time
}

// SingleOrderSyncResult reports the outcome of syncing one order by ID
type SingleOrderSyncResult struct {
	ExternalID       string
	Imported         bool
	NotificationSent bool
}

// BillingSyncResult reports the outcome of an invoice reconciliation run
type BillingSyncResult struct {
	// Processed is the number of completed storefront orders examined
	Processed int
	// Imported is the number of orders that had to be imported first
	Imported int
	// Invoiced is the number of new accounting invoices created
	Invoiced int
	// AlreadyInvoiced is the number of orders that already had an invoice
	AlreadyInvoiced int
	// SkippedNoEmail is the number of orders without a billing email
	SkippedNoEmail int
	// Failed is the number of orders that could not be invoiced this run
	Failed int

	StartedAt  time.Time
	FinishedAt time.Time
}

// ReconcileResult reports the outcome of a status reconciliation run
type ReconcileResult struct {
	// Checked is the number of imported orders compared
	Checked int
	// Updated is the number of orders whose status changed
	Updated int
	// Missing is the number of local orders no longer found on the storefront
	Missing int
}
