package models

// IndicatorStatus is a dashboard traffic-light classification.
type IndicatorStatus struct {
	Level string `json:"level"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// EconomicIndicator is one macro series observation. Unavailable indicators
// are represented, not omitted: Available is false and Value is null.
type EconomicIndicator struct {
	Name      string           `json:"name"`
	Value     *float64         `json:"value"`
	Unit      string           `json:"unit"`
	Period    string           `json:"period"`
	Status    *IndicatorStatus `json:"status,omitempty"`
	Available bool             `json:"available"`
}

// EconomicIndicatorSet maps indicator key to observation.
type EconomicIndicatorSet map[string]EconomicIndicator

// IndicatorBoard is the indicator aggregation payload.
type IndicatorBoard struct {
	Indicators      EconomicIndicatorSet `json:"indicators"`
	LastUpdated     string               `json:"lastUpdated"`
	Source          string               `json:"source"`
	AvailableCount  int                  `json:"availableCount"`
	TotalIndicators int                  `json:"totalIndicators"`
}
