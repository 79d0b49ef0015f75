package models

// SolarSettings is the per-user singleton holding tariff and solar assumptions.
type SolarSettings struct {
	ElectricityRate  float64 `json:"electricity_rate"`  // INR/kWh, > 0
	SolarCostPerKW   float64 `json:"solar_cost_per_kw"` // INR/kW, >= 0
	EfficiencyFactor float64 `json:"efficiency_factor"` // derating fraction, typically (0,1]
	SunlightHours    float64 `json:"sunlight_hours"`    // hours/day, > 0
	LifetimeYears    int     `json:"lifetime_years"`    // > 0
	AnnualInflation  float64 `json:"annual_inflation"`  // fraction, >= 0
}

// DefaultSolarSettings returns the effective values used when a user has
// never saved settings. The first read persists these back.
func DefaultSolarSettings() SolarSettings {
	return SolarSettings{
		ElectricityRate:  9.0,
		SolarCostPerKW:   70000,
		EfficiencyFactor: 1.0,
		SunlightHours:    5,
		LifetimeYears:    25,
		AnnualInflation:  0.05,
	}
}
