package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo schedules and execution logs for local development.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	shopID := int64(555001)
	allDays := []int32{0, 1, 2, 3, 4, 5, 6}

	// five daily schedules over consecutive morning windows
	for i := 1; i <= 5; i++ {
		campaignID := int64(100 + i)
		name := fmt.Sprintf("Demo campaign %d", i)
		budget := int64(100000 * i)
		_, err := db.Exec(ctx, `INSERT INTO scheduled_ads_budget
    (id, shop_id, campaign_id, campaign_name, ad_type,
     hour_start, minute_start, hour_end, minute_end,
     days_of_week, specific_dates, budget, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NULL,$11,TRUE,now())
ON CONFLICT DO NOTHING`,
			uuid.New(), shopID, campaignID, name, "auto",
			8+i, 0, 9+i, 0, allDays, budget)
		if err != nil {
			return err
		}
	}

	// one specific-dates schedule for tomorrow and the day after
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	dayAfter := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	_, err := db.Exec(ctx, `INSERT INTO scheduled_ads_budget
    (id, shop_id, campaign_id, campaign_name, ad_type,
     hour_start, minute_start, hour_end, minute_end,
     days_of_week, specific_dates, budget, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NULL,$10,$11,TRUE,now())
ON CONFLICT DO NOTHING`,
		uuid.New(), shopID, int64(200), "Demo flash campaign", "manual",
		20, 0, 22, 30, []string{tomorrow, dayAfter}, int64(2500000))
	if err != nil {
		return err
	}

	// a few historical execution logs
	for i := 0; i < 20; i++ {
		campaignID := int64(100 + i%5 + 1)
		status := "success"
		var errMsg *string
		if i%7 == 0 {
			status = "failed"
			msg := "platform: campaign budget locked"
			errMsg = &msg
		}
		_, err := db.Exec(ctx, `INSERT INTO ads_budget_logs
    (shop_id, campaign_id, campaign_name, new_budget, status, error_message, executed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			shopID, campaignID, fmt.Sprintf("Demo campaign %d", i%5+1),
			int64(100000*(i%5+1)), status, errMsg,
			time.Now().Add(-time.Duration(i)*time.Hour))
		if err != nil {
			return err
		}
	}
	return nil
}
