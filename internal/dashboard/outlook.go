package dashboard

import (
	"fmt"
	"sync"
)

// ClimateOutlookImageURL is the CPC 6-10 day temperature outlook shown next
// to the SPC map. It is a static display resource; the service never fetches
// or decodes the image bytes.
const ClimateOutlookImageURL = "https://www.cpc.ncep.noaa.gov/products/predictions/610day/610temp.new.gif"

// OutlookVariant identifies one of the four static SPC day-1 outlook map
// images the user can display.
type OutlookVariant int

const (
	CategoricalMap OutlookVariant = iota
	TornadoMap
	WindMap
	HailMap
)

func (v OutlookVariant) String() string {
	switch v {
	case TornadoMap:
		return "tornado"
	case WindMap:
		return "wind"
	case HailMap:
		return "hail"
	default:
		return "categorical"
	}
}

// ImageURL returns the fixed SPC image for the variant.
func (v OutlookVariant) ImageURL() string {
	switch v {
	case TornadoMap:
		return "https://www.spc.noaa.gov/products/outlook/day1probotlk_torn.gif"
	case WindMap:
		return "https://www.spc.noaa.gov/products/outlook/day1probotlk_wind.gif"
	case HailMap:
		return "https://www.spc.noaa.gov/products/outlook/day1probotlk_hail.gif"
	default:
		return "https://www.spc.noaa.gov/products/outlook/day1otlk.gif"
	}
}

// VariantFromName maps a variant name from the selection API back to an
// OutlookVariant.
func VariantFromName(name string) (OutlookVariant, error) {
	switch name {
	case "categorical":
		return CategoricalMap, nil
	case "tornado":
		return TornadoMap, nil
	case "wind":
		return WindMap, nil
	case "hail":
		return HailMap, nil
	default:
		return CategoricalMap, fmt.Errorf("unknown outlook variant %q", name)
	}
}

// OutlookSelection holds the currently displayed outlook map. Selection is a
// pure view concern: it has exactly one writer (the user-facing selection
// action) and changing it never touches any fetch slot.
type OutlookSelection struct {
	mu      sync.Mutex
	current OutlookVariant
}

// NewOutlookSelection starts at the categorical map.
func NewOutlookSelection() *OutlookSelection {
	return &OutlookSelection{current: CategoricalMap}
}

// Select switches the displayed variant. Total: every variant is valid and
// selection always succeeds.
func (s *OutlookSelection) Select(v OutlookVariant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = v
}

// Current returns the displayed variant.
func (s *OutlookSelection) Current() OutlookVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
