package domain

import "time"

// LogStatus is the outcome of one budget-change attempt.
type LogStatus string

const (
	LogSuccess LogStatus = "success"
	LogFailed  LogStatus = "failed"
	LogSkipped LogStatus = "skipped"
)

// BudgetLog records one execution attempt against the platform. Rows are
// immutable; the HTTP surface only reads them.
type BudgetLog struct {
	ID           int64
	ShopID       int64
	CampaignID   int64
	CampaignName string
	NewBudget    int64
	Status       LogStatus
	ErrorMessage *string
	ExecutedAt   time.Time
}
