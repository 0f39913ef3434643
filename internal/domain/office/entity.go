package office

import "time"

type Office struct {
	ID           string
	Name         string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters *float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasGeofence reports whether the office has a complete geofence
// (coordinates and radius) configured.
func (o *Office) HasGeofence() bool {
	return o.Latitude != nil && o.Longitude != nil && o.RadiusMeters != nil
}
