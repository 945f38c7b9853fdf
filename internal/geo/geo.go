// Package geo provides the static city centroid table used to attach
// approximate coordinates to events whose provider supplied none. Only a
// fixed list of major Brazilian cities is covered; anything else falls back
// to the São Paulo centroid. This is deliberately not a geocoder.
package geo

import "github.com/luvbee/event-spider/internal/event"

// Point is an approximate city-center coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// Table maps normalized city slugs to centroids. It is an explicit value
// passed to consumers so tests can substitute a minimal table.
type Table map[string]Point

// saoPaulo is the default centroid for cities not present in the table.
var saoPaulo = Point{Lat: -23.5505, Lng: -46.6333}

// DefaultTable returns the built-in centroid table covering the Brazilian
// capitals and other major cities.
func DefaultTable() Table {
	return Table{
		"sao-paulo":      {Lat: -23.5505, Lng: -46.6333},
		"rio-de-janeiro": {Lat: -22.9068, Lng: -43.1729},
		"belo-horizonte": {Lat: -19.9167, Lng: -43.9345},
		"brasilia":       {Lat: -15.7801, Lng: -47.9292},
		"salvador":       {Lat: -12.9714, Lng: -38.5014},
		"fortaleza":      {Lat: -3.7172, Lng: -38.5434},
		"curitiba":       {Lat: -25.4284, Lng: -49.2733},
		"recife":         {Lat: -8.0476, Lng: -34.8770},
		"porto-alegre":   {Lat: -30.0346, Lng: -51.2177},
		"goiania":        {Lat: -16.6869, Lng: -49.2648},
		"campinas":       {Lat: -22.9056, Lng: -47.0608},
		"sao-luis":       {Lat: -2.5297, Lng: -44.3028},
		"teresina":       {Lat: -5.0892, Lng: -42.8019},
		"natal":          {Lat: -5.7945, Lng: -35.2110},
		"campo-grande":   {Lat: -20.4697, Lng: -54.6201},
		"joao-pessoa":    {Lat: -7.1195, Lng: -34.8450},
		"aracaju":        {Lat: -10.9472, Lng: -37.0731},
		"cuiaba":         {Lat: -15.6014, Lng: -56.0979},
		"florianopolis":  {Lat: -27.5954, Lng: -48.5480},
		"vitoria":        {Lat: -20.3155, Lng: -40.3128},
		"belem":          {Lat: -1.4558, Lng: -48.4902},
		"macapa":         {Lat: 0.0349, Lng: -51.0694},
		"porto-velho":    {Lat: -8.7608, Lng: -63.9020},
		"boa-vista":      {Lat: 2.8235, Lng: -60.6758},
		"palmas":         {Lat: -10.2491, Lng: -48.3243},
		"manaus":         {Lat: -3.1190, Lng: -60.0217},
		"rio-branco":     {Lat: -9.9754, Lng: -67.8249},
	}
}

// Lookup returns the centroid for a city name (any casing/accents), falling
// back to the São Paulo centroid when the city is not in the table. It never
// fails: callers rely on always receiving usable coordinates.
func (t Table) Lookup(city string) Point {
	if p, ok := t[event.Slugify(city)]; ok {
		return p
	}
	return saoPaulo
}
