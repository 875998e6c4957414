package domain

import "time"

// Entity names used in routes, topics and search dispatch.
const (
	EntityLaptop    = "laptop"
	EntityAccessory = "accessory"
	EntityPart      = "part"
)

// Laptop is a laptop listing.
type Laptop struct {
	ID           string    `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Category     string    `json:"category"`
	CPU          string    `json:"cpu"`
	RAM          string    `json:"ram"`
	Storage      string    `json:"storage"`
	Connectivity string    `json:"connectivity"`
	Availability string    `json:"availability"`
	Currency     string    `json:"currency"`
	Features     []string  `json:"features"`
	Price        float64   `json:"price"`
	Ratings      float64   `json:"ratings"`
	Warranty     string    `json:"warranty"`
	Description  string    `json:"description"`
	ImageURLs    []string  `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Accessory categories.
const (
	AccessoryHeadphones = "Headphones"
	AccessoryChargers   = "Chargers"
	AccessoryKeyboards  = "Keyboards"
	AccessoryOther      = "Other"
)

// AccessoryCategories lists the accepted accessory categories.
func AccessoryCategories() []string {
	return []string{AccessoryHeadphones, AccessoryChargers, AccessoryKeyboards, AccessoryOther}
}

// Accessory is an accessory listing.
type Accessory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category,omitempty"`
	Type        string    `json:"type,omitempty"`
	Model       string    `json:"model,omitempty"`
	Features    []string  `json:"features"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	InStock     bool      `json:"in_stock"`
	ImageURLs   []string  `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Part is a spare part listing.
type Part struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Brand     string    `json:"brand"`
	RAM       string    `json:"ram,omitempty"`
	Processor string    `json:"processor,omitempty"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Brand is a laptop brand shown in navigation.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Slider is a home-page banner.
type Slider struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	Title     string    `json:"title,omitempty"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Contact is a contact-form submission.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
