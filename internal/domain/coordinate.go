package domain

// Coordinate is a geographic point. Valid latitude is [-90,90], longitude
// [-180,180]; values outside that range are the caller's problem.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Valid checks that the coordinate is inside the lat/lng range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
