package domain

type Destination struct {
	ID          int64
	Name        string
	Location    string
	Description string
	PriceCents  int64
	ImageURL    string
	Featured    bool
}
