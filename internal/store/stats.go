package store

import (
	"context"
	"database/sql"
	"fmt"

	"assetdesk/internal/model"
)

// Stats is the aggregate snapshot served to the dashboard and the polling
// endpoint.
type Stats struct {
	TotalUsers        int `json:"total_users"`
	TotalAssets       int `json:"total_assets"`
	AssignedAssets    int `json:"assigned_assets"`
	AvailableAssets   int `json:"available_assets"`
	MaintenanceAssets int `json:"maintenance_assets"`
	GeneralUseAssets  int `json:"general_use_assets"`
	TotalServers      int `json:"total_servers"`
	OpenTasks         int `json:"open_tasks"`

	RecentUsers  []model.User  `json:"recent_users"`
	RecentAssets []model.Asset `json:"recent_assets"`
}

// GetStats returns aggregate counts and the five most recent users and assets.
func GetStats(ctx context.Context, db *sql.DB) (*Stats, error) {
	s := &Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM users`, &s.TotalUsers},
		{`SELECT COUNT(*) FROM assets`, &s.TotalAssets},
		{`SELECT COUNT(*) FROM assets WHERE status = 'assigned'`, &s.AssignedAssets},
		{`SELECT COUNT(*) FROM assets WHERE status = 'available'`, &s.AvailableAssets},
		{`SELECT COUNT(*) FROM assets WHERE status = 'maintenance'`, &s.MaintenanceAssets},
		{`SELECT COUNT(*) FROM assets WHERE status = 'GeneralUse'`, &s.GeneralUseAssets},
		{`SELECT COUNT(*) FROM servers`, &s.TotalServers},
		{`SELECT COUNT(*) FROM tasks WHERE completed = 0`, &s.OpenTasks},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}

	users, err := ListUsers(ctx, db, UserFilter{})
	if err != nil {
		return nil, err
	}
	if len(users) > 5 {
		users = users[:5]
	}
	s.RecentUsers = users

	assets, err := ListAssets(ctx, db, AssetFilter{})
	if err != nil {
		return nil, err
	}
	if len(assets) > 5 {
		assets = assets[:5]
	}
	s.RecentAssets = assets

	return s, nil
}
