package domain

import (
	"encoding/json"
	"errors"
)

// outlookEnvelope mirrors the feature-collection shape of an SPC outlook
// query response. Features is a pointer so an absent array can be told apart
// from an empty one.
type outlookEnvelope struct {
	Features *[]outlookFeature `json:"features"`
}

type outlookFeature struct {
	Attributes outlookAttributes `json:"attributes"`
}

type outlookAttributes struct {
	DN *int `json:"dn"`
}

// DecodeRisk normalizes one SPC outlook query response into a RiskValue.
//
// Zero features is a success: PercentRisk(0) for the probabilistic layers
// (the point is outside every risk polygon) and NoRisk for the categorical
// layer, which has no code for "none". When multiple features are returned
// the first wins; a point query is expected to intersect at most one polygon
// per layer.
func DecodeRisk(raw []byte, kind HazardKind) (RiskValue, error) {
	var env outlookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return RiskValue{}, &MalformedError{Cause: err}
	}
	if env.Features == nil {
		return RiskValue{}, &MalformedError{Cause: errors.New("response has no features array")}
	}

	features := *env.Features
	if len(features) == 0 {
		if kind == HazardCategorical {
			return NoRisk(), nil
		}
		return PercentRisk(0), nil
	}

	dn := features[0].Attributes.DN
	if dn == nil {
		return RiskValue{}, &MalformedError{Cause: errors.New("feature attributes have no dn field")}
	}

	if kind == HazardCategorical {
		category, ok := CategoryFromCode(*dn)
		if !ok {
			return RiskValue{}, &UnknownCategoryError{Code: *dn}
		}
		return CategoricalRisk(category), nil
	}

	// Probabilistic dn is the raw percentage, passed through unvalidated.
	return PercentRisk(*dn), nil
}
