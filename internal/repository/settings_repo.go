package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"solar_planner/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite { return &SettingsSQLite{db: db} }

var _ SettingsRepo = (*SettingsSQLite)(nil)

const (
	upsertSettingsSQL = `
		INSERT INTO solar_settings
			(user_id, electricity_rate, solar_cost_per_kw, efficiency_factor, sunlight_hours, lifetime_years, annual_inflation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			electricity_rate=excluded.electricity_rate,
			solar_cost_per_kw=excluded.solar_cost_per_kw,
			efficiency_factor=excluded.efficiency_factor,
			sunlight_hours=excluded.sunlight_hours,
			lifetime_years=excluded.lifetime_years,
			annual_inflation=excluded.annual_inflation
	`

	selectSettingsSQL = `
		SELECT electricity_rate, solar_cost_per_kw, efficiency_factor, sunlight_hours, lifetime_years, annual_inflation
		FROM solar_settings WHERE user_id = ?
	`
)

// Load fetches the user's settings row. The second return reports whether a
// row existed; the service materializes defaults when it did not.
func (r *SettingsSQLite) Load(ctx context.Context, userID int) (models.SolarSettings, bool, error) {
	var s models.SolarSettings
	err := r.db.QueryRowContext(ctx, selectSettingsSQL, userID).Scan(
		&s.ElectricityRate,
		&s.SolarCostPerKW,
		&s.EfficiencyFactor,
		&s.SunlightHours,
		&s.LifetimeYears,
		&s.AnnualInflation,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SolarSettings{}, false, nil
		}
		return models.SolarSettings{}, false, fmt.Errorf("select settings for user %d: %w", userID, err)
	}
	return s, true, nil
}

// Save upserts the singleton settings row for the user.
func (r *SettingsSQLite) Save(ctx context.Context, userID int, s models.SolarSettings) error {
	if _, err := r.db.ExecContext(ctx, upsertSettingsSQL,
		userID,
		s.ElectricityRate,
		s.SolarCostPerKW,
		s.EfficiencyFactor,
		s.SunlightHours,
		s.LifetimeYears,
		s.AnnualInflation,
	); err != nil {
		return fmt.Errorf("upsert settings for user %d: %w", userID, err)
	}
	return nil
}
