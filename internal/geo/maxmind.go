package geo

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindResolver resolves addresses against a GeoLite2 City database.
type MaxMindResolver struct {
	reader *geoip2.Reader
}

// OpenMaxMind opens a GeoLite2 .mmdb database at the given path.
func OpenMaxMind(path string) (*MaxMindResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geolite2 database: %w", err)
	}
	return &MaxMindResolver{reader: reader}, nil
}

// Close releases the database handle.
func (r *MaxMindResolver) Close() error {
	return r.reader.Close()
}

// Locate resolves an address to its generalized location.
//
// Loopback addresses return Local without touching the database. For US
// addresses the region is the state code; elsewhere it is the country
// code. All failures are LookupErrors the caller degrades to Unknown.
func (r *MaxMindResolver) Locate(ctx context.Context, ip string) (Location, error) {
	if isLoopback(ip) {
		return Local, nil
	}
	if err := ctx.Err(); err != nil {
		return Location{}, &LookupError{IP: ip, Err: err}
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}, &LookupError{IP: ip, Err: fmt.Errorf("unparseable address")}
	}

	record, err := r.reader.City(parsed)
	if err != nil {
		return Location{}, &LookupError{IP: ip, Err: err}
	}

	city := record.City.Names["en"]
	if city == "" {
		return Location{}, &LookupError{IP: ip, Err: fmt.Errorf("no city for address")}
	}

	if record.Country.IsoCode != "US" {
		return Location{City: city, Region: record.Country.IsoCode}, nil
	}
	if len(record.Subdivisions) == 0 {
		return Location{}, &LookupError{IP: ip, Err: fmt.Errorf("no subdivision for US address")}
	}
	// Most specific subdivision carries the state code.
	state := record.Subdivisions[len(record.Subdivisions)-1].IsoCode
	return Location{City: city, Region: state}, nil
}
