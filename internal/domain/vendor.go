package domain

// Vendor is the slice of the vendors catalog this service needs: a display
// name and the store location quotes are computed from. A nil Location means
// the catalog has no coordinates for the store and fee/ETA fall back.
type Vendor struct {
	ID       string
	Name     string
	Location *Coordinate
}
