package domain

// Campaign is an advertising campaign owned by the external platform. The
// service never persists campaigns; it fetches a snapshot through the
// platform client and denormalizes name and type into schedules at creation
// time. Budgets are integer currency units.
type Campaign struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // auto, manual
	DailyBudget int64  `json:"daily_budget"`
}
