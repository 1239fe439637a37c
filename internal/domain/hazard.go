package domain

import (
	"encoding/json"
	"fmt"
)

// HazardKind identifies one of the four day-1 outlook layers tracked by the
// dashboard. The zero value is the categorical layer.
type HazardKind int

const (
	HazardCategorical HazardKind = iota
	HazardTornado
	HazardWind
	HazardHail
)

// Kinds returns every hazard kind in display order.
func Kinds() []HazardKind {
	return []HazardKind{HazardCategorical, HazardTornado, HazardWind, HazardHail}
}

// LayerID returns the SPC MapServer layer the kind is queried against.
func (k HazardKind) LayerID() int {
	switch k {
	case HazardCategorical:
		return 1
	case HazardTornado:
		return 3
	case HazardWind:
		return 5
	case HazardHail:
		return 7
	default:
		return -1
	}
}

func (k HazardKind) String() string {
	switch k {
	case HazardCategorical:
		return "categorical"
	case HazardTornado:
		return "tornado"
	case HazardWind:
		return "wind"
	case HazardHail:
		return "hail"
	default:
		return fmt.Sprintf("hazard(%d)", int(k))
	}
}

// GeoPoint is a WGS-84 latitude/longitude coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RiskCategory is the six-level ordinal severity scale used by the SPC
// categorical outlook. Values are the upstream dn codes.
type RiskCategory int

const (
	CategoryThunderstorms RiskCategory = 2
	CategoryMarginal      RiskCategory = 3
	CategorySlight        RiskCategory = 4
	CategoryEnhanced      RiskCategory = 5
	CategoryModerate      RiskCategory = 6
	CategoryHigh          RiskCategory = 7
)

// CategoryFromCode maps an upstream dn code to a RiskCategory. The second
// return value is false for codes outside the known 2-7 scale.
func CategoryFromCode(dn int) (RiskCategory, bool) {
	if dn < int(CategoryThunderstorms) || dn > int(CategoryHigh) {
		return 0, false
	}
	return RiskCategory(dn), true
}

func (c RiskCategory) String() string {
	switch c {
	case CategoryThunderstorms:
		return "THUNDERSTORMS"
	case CategoryMarginal:
		return "MARGINAL"
	case CategorySlight:
		return "SLIGHT"
	case CategoryEnhanced:
		return "ENHANCED"
	case CategoryModerate:
		return "MODERATE"
	case CategoryHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("CATEGORY(%d)", int(c))
	}
}

// RiskValueType discriminates the three shapes a decoded risk can take.
type RiskValueType int

const (
	// RiskNone means a categorical query found no intersecting polygon.
	RiskNone RiskValueType = iota
	// RiskCategoricalValue carries a RiskCategory from the categorical layer.
	RiskCategoricalValue
	// RiskPercentValue carries a raw risk percentage from a probabilistic layer.
	RiskPercentValue
)

// RiskValue is the normalized result of one hazard query. Only the field
// selected by Type is meaningful; construct values through NoRisk,
// CategoricalRisk, or PercentRisk.
type RiskValue struct {
	Type     RiskValueType
	Category RiskCategory
	Percent  int
}

// NoRisk is the categorical result when the point lies outside every
// outlook polygon. There is no category code for "none" upstream.
func NoRisk() RiskValue {
	return RiskValue{Type: RiskNone}
}

// CategoricalRisk wraps a decoded categorical outlook level.
func CategoricalRisk(c RiskCategory) RiskValue {
	return RiskValue{Type: RiskCategoricalValue, Category: c}
}

// PercentRisk wraps a probabilistic layer's raw risk percentage.
func PercentRisk(p int) RiskValue {
	return RiskValue{Type: RiskPercentValue, Percent: p}
}

// Display renders the value the way the dashboard shows it: the upper-cased
// category label, "N%" for probabilistic layers, or "NONE".
func (v RiskValue) Display() string {
	switch v.Type {
	case RiskCategoricalValue:
		return v.Category.String()
	case RiskPercentValue:
		return fmt.Sprintf("%d%%", v.Percent)
	default:
		return "NONE"
	}
}

// MarshalJSON emits a tagged form so consumers never have to guess which
// field is live.
func (v RiskValue) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case RiskCategoricalValue:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Category string `json:"category"`
			Display  string `json:"display"`
		}{Type: "categorical", Category: v.Category.String(), Display: v.Display()})
	case RiskPercentValue:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Percent int    `json:"percent"`
			Display string `json:"display"`
		}{Type: "percent", Percent: v.Percent, Display: v.Display()})
	default:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Display string `json:"display"`
		}{Type: "none", Display: v.Display()})
	}
}
