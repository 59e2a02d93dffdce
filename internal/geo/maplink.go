// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package geo extracts and normalizes geographic coordinates from the
// free-form map links store owners paste into the admin forms. Supported
// inputs:
//   - 47.9184676, 106.9177016 (bare coordinate pair)
//   - https://www.google.com/maps?q=47.9184676,106.9177016
//   - https://www.google.com/maps/@47.9184676,106.9177016,15z
//   - https://www.google.com/maps/search/?api=1&query=47.9184676,106.9177016
package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Default is the fallback location: central Ulaanbaatar (Sükhbaatar Square).
var Default = Coordinates{Lat: 47.9184676, Lng: 106.9177016}

var (
	directPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?),\s*(-?\d+(?:\.\d+)?)$`)
	qParamPattern = regexp.MustCompile(`[?&]q=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	atPattern     = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	queryPattern  = regexp.MustCompile(`[?&]query=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// patterns in priority order; the first match that validates wins.
var patterns = []*regexp.Regexp{directPattern, qParamPattern, atPattern, queryPattern}

// ExtractCoordinates parses a pasted map link or raw coordinate string.
// Returns false if the input is empty, matches no supported format, or the
// matched values are out of range.
func ExtractCoordinates(input string) (Coordinates, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Coordinates{}, false
	}

	for _, p := range patterns {
		m := p.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lng, errLng := strconv.ParseFloat(m[2], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		if IsValid(lat, lng) {
			return Coordinates{Lat: lat, Lng: lng}, true
		}
	}
	return Coordinates{}, false
}

// IsValid reports whether lat/lng form a usable coordinate pair.
// Boundaries are inclusive; NaN and infinities are rejected.
func IsValid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Normalize repairs a coordinate pair. A pair that is invalid but valid when
// swapped (a common paste mistake — longitude first) is swapped; a pair that
// is invalid either way falls back to the default location. Valid pairs are
// rounded to 6 decimal places.
func Normalize(c Coordinates) Coordinates {
	if !IsValid(c.Lat, c.Lng) {
		if IsValid(c.Lng, c.Lat) {
			return Coordinates{Lat: round6(c.Lng), Lng: round6(c.Lat)}
		}
		return Default
	}
	return Coordinates{Lat: round6(c.Lat), Lng: round6(c.Lng)}
}

// MapLink builds the canonical Google Maps link for a coordinate pair,
// or "" if the pair is invalid.
func MapLink(lat, lng float64) string {
	if !IsValid(lat, lng) {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s", trim6(lat), trim6(lng))
}

// Format renders a coordinate pair as "lat, lng" to 6 decimal places,
// or an error string if the pair is invalid.
func Format(lat, lng float64) string {
	if !IsValid(lat, lng) {
		return "invalid coordinates"
	}
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

// EmbedURL converts a map link into an embeddable Google Maps URL.
// Returns "" when nothing embeddable can be derived.
func EmbedURL(mapLink string) string {
	if mapLink == "" {
		return ""
	}

	if c, ok := ExtractCoordinates(mapLink); ok {
		n := Normalize(c)
		return fmt.Sprintf("https://www.google.com/maps/embed/v1/place?key=&q=%s,%s", trim6(n.Lat), trim6(n.Lng))
	}

	if !strings.Contains(mapLink, "maps.google.com") && !strings.Contains(mapLink, "google.com/maps") {
		return ""
	}
	if strings.Contains(mapLink, "google.com/maps/embed") {
		return mapLink
	}
	if _, after, ok := strings.Cut(mapLink, "?q="); ok {
		return "https://www.google.com/maps/embed/v1/place?key=&q=" + after
	}
	if _, after, ok := strings.Cut(mapLink, "/place/"); ok {
		return "https://www.google.com/maps/embed/v1/place?key=&q=" + after
	}
	return ""
}

// Resolve picks the best map link for a store: a valid location wins, then
// coordinates extracted from an existing link, then the link itself if it at
// least points at Google Maps, and finally the default location.
func Resolve(location *Coordinates, mapLink string) string {
	if location != nil && IsValid(location.Lat, location.Lng) {
		n := Normalize(*location)
		return MapLink(n.Lat, n.Lng)
	}
	if mapLink != "" {
		if c, ok := ExtractCoordinates(mapLink); ok {
			n := Normalize(c)
			return MapLink(n.Lat, n.Lng)
		}
		if strings.Contains(mapLink, "maps.google.com") || strings.Contains(mapLink, "google.com/maps") {
			return mapLink
		}
	}
	return MapLink(Default.Lat, Default.Lng)
}

// round6 rounds to 6 decimal places (~0.1m precision).
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// trim6 formats a float to at most 6 decimals without trailing zeros,
// matching the way links are built by the admin frontend.
func trim6(v float64) string {
	return strconv.FormatFloat(round6(v), 'f', -1, 64)
}
