// Package config holds the handful of package-level tunables persist
// needs, as plain vars and consts rather than a generic settings struct.
package config

// Version is the current persist module version.
var Version = "0.1.0"

// HAMTBits is the branching-factor exponent (b); 5 gives a branching
// factor of 32.
const HAMTBits = 5

// RenderWidth is the default truncation width used when printing
// persistent/transient containers (roughly 60 characters).
const RenderWidth = 60

// RenderCountThreshold is the element count above which String() gives up
// on listing elements and falls back to a bare thousands-separated count,
// since a truncated preview of a huge container is rarely useful.
const RenderCountThreshold = 1000

// Delimiters for the printed forms, chosen so persistent and transient
// values are unambiguous in logs.
const (
	ListOpenP, ListCloseP = "[|", "|]"
	ListOpenT, ListCloseT = "[<", ">]"
	SetOpenP, SetCloseP   = "{|", "|}"
	SetOpenT, SetCloseT   = "{<", ">}"
	MapOpenP, MapCloseP   = "{|", "|}"
	MapOpenT, MapCloseT   = "{<", ">}"
)
