// Package geo resolves client network addresses to a coarse city/region
// pair for session events.
//
// Resolution is a collaborator with a bounded-latency contract: any
// failure degrades to the Unknown sentinel instead of aborting the
// workflow that triggered the lookup.
package geo

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Location is a generalized place: city plus a region or country code.
// No precise coordinates are ever recorded.
type Location struct {
	City   string
	Region string
}

// String renders the stored "City, Region" form.
func (l Location) String() string {
	if l == (Location{}) {
		return Unknown
	}
	return l.City + ", " + l.Region
}

// Local is returned for loopback addresses without any lookup.
var Local = Location{City: "Local", Region: "HOST"}

// Unknown is the sentinel recorded when resolution fails.
const Unknown = "Unknown"

// Resolver maps a client network address to a location.
//
// Implemented by MaxMindResolver (production) and StaticResolver (tests).
type Resolver interface {
	Locate(ctx context.Context, ip string) (Location, error)
}

// LookupError reports a failed resolution. It is recoverable: callers
// record the Unknown sentinel and proceed.
type LookupError struct {
	IP  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("geo lookup for %s: %v", e.IP, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// IsLookupError reports whether err is a LookupError.
// Uses errors.As to handle wrapped errors.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// isLoopback reports whether the address short-circuits to Local.
func isLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}

// StaticResolver returns a predetermined location or error for testing.
type StaticResolver struct {
	Location Location
	Err      error
}

// Locate returns the configured pair. Loopback short-circuits to Local
// like the production resolver.
func (r StaticResolver) Locate(_ context.Context, ip string) (Location, error) {
	if isLoopback(ip) {
		return Local, nil
	}
	if r.Err != nil {
		return Location{}, &LookupError{IP: ip, Err: r.Err}
	}
	return r.Location, nil
}
