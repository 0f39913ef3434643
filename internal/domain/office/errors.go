package office

import "errors"

var (
	ErrOfficeNotFound        = errors.New("office not found")
	ErrGeofenceNotConfigured = errors.New("office geofence is not configured")
)
