package domain

type Property struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Status      string   `json:"status"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Guests      int      `json:"guests"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// PropertyUpdate is a partial update; nil fields are left untouched.
// The id is never updatable.
type PropertyUpdate struct {
	Name        *string   `json:"name"`
	Address     *string   `json:"address"`
	Description *string   `json:"description"`
	Price       *string   `json:"price"`
	Status      *string   `json:"status"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Guests      *int      `json:"guests"`
	Amenities   *[]string `json:"amenities"`
	Images      *[]string `json:"images"`
}
