// Package domain models NOAA severe-weather outlook and forecast data for a
// single observation point.
//
// # Data Sources
//
// Hazard risk comes from the Storm Prediction Center (SPC) day-1 convective
// outlook, served as an ArcGIS MapServer at
// https://mapservices.weather.noaa.gov/vector/rest/services/outlooks/SPC_wx_outlks/MapServer/.
// Each hazard kind is a separate map layer, queried with a point-intersection
// spatial filter. A response is a feature collection; each feature's
// attributes carry an integer "dn" field holding the risk discriminant for
// the polygon containing the query point. A point outside every polygon
// yields zero features, which means zero risk, not an error.
//
// # SPC dn Codes
//
// For the categorical layer, dn is an ordinal severity code:
//
//	2 = TSTM (general thunderstorms)
//	3 = MRGL (marginal)
//	4 = SLGT (slight)
//	5 = ENH  (enhanced)
//	6 = MDT  (moderate)
//	7 = HIGH (high)
//
// There is no code 0 or 1; a categorical query with no intersecting polygon
// simply returns no features. Codes outside 2-7 are rejected as unknown.
//
// For the probabilistic layers (tornado, wind, hail), dn is the raw risk
// percentage for the polygon. It is passed through as-is; upstream has only
// ever been observed to produce values in 0-100, and the range is left
// unvalidated (see TestDecodeRisk_PercentOutOfRange, which pins the
// pass-through behavior).
//
// # NBM Text Forecast
//
// The short-range temperature forecast comes from the National Blend of
// Models (NBM) text product (ele=NBS), a fixed-width, newline-delimited
// format. The record of interest begins with the literal token "TXN",
// followed by whitespace-separated integers: the overnight low first, then
// the daytime high, in degrees Fahrenheit. The product may repeat the TXN
// row across forecast cycles; the last occurrence reflects the most recent
// cycle and is authoritative.
package domain
