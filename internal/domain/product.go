package domain

// Product is an insurance product priced for a coverage location.
type Product struct {
	ID          int64   `json:"id"`
	ProductCode string  `json:"productCode"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
}
