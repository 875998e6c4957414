package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DefaultCurrency is applied to laptops listed without one.
const DefaultCurrency = "INR"

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (l *Laptop) Key() string { return l.ID }
func (l *Laptop) SetKey(id string) { l.ID = id }
func (l *Laptop) Created() time.Time { return l.CreatedAt }
func (l *Laptop) Stamp(created, updated time.Time) { l.CreatedAt, l.UpdatedAt = created, updated }

func (a *Accessory) Key() string { return a.ID }
func (a *Accessory) SetKey(id string) { a.ID = id }
func (a *Accessory) Created() time.Time { return a.CreatedAt }
func (a *Accessory) Stamp(created, updated time.Time) { a.CreatedAt, a.UpdatedAt = created, updated }

func (p *Part) Key() string { return p.ID }
func (p *Part) SetKey(id string) { p.ID = id }
func (p *Part) Created() time.Time { return p.CreatedAt }
func (p *Part) Stamp(created, updated time.Time) { p.CreatedAt, p.UpdatedAt = created, updated }

// Normalize trims text fields and fills defaults.
func (l *Laptop) Normalize() {
	trim(&l.Brand, &l.Model, &l.Category, &l.CPU, &l.RAM, &l.Storage, &l.Connectivity,
		&l.Availability, &l.Currency, &l.Warranty, &l.Description)
	if l.Currency == "" {
		l.Currency = DefaultCurrency
	}
	l.Features = nonNil(l.Features)
	l.ImageURLs = nonNil(l.ImageURLs)
}

// Validate checks a normalized laptop.
func (l *Laptop) Validate() error {
	switch {
	case l.Brand == "":
		return errors.New("brand is required")
	case l.Model == "":
		return errors.New("model is required")
	case l.Price < 0:
		return errors.New("price cannot be negative")
	case l.Ratings < 0 || l.Ratings > 5:
		return errors.New("ratings must be between 0 and 5")
	}
	return nil
}

// Normalize trims text fields and fills defaults.
func (a *Accessory) Normalize() {
	trim(&a.Name, &a.Brand, &a.Category, &a.Type, &a.Model, &a.Description)
	a.Features = nonNil(a.Features)
	a.ImageURLs = nonNil(a.ImageURLs)
}

// MaxAccessoryDescription is the longest accepted accessory description.
const MaxAccessoryDescription = 500

// Validate checks a normalized accessory.
func (a *Accessory) Validate() error {
	switch {
	case a.Name == "":
		return errors.New("accessory name is required")
	case a.Brand == "":
		return errors.New("brand is required")
	case a.Price < 0:
		return errors.New("price cannot be negative")
	case len([]rune(a.Description)) > MaxAccessoryDescription:
		return fmt.Errorf("description must be at most %d characters", MaxAccessoryDescription)
	case a.Category != "" && !slices.Contains(AccessoryCategories(), a.Category):
		return fmt.Errorf("category must be one of %s", strings.Join(AccessoryCategories(), ", "))
	}
	return nil
}

// Normalize trims text fields.
func (p *Part) Normalize() {
	trim(&p.Name, &p.Category, &p.Brand, &p.RAM, &p.Processor)
}

// Validate checks a normalized part.
func (p *Part) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("name is required")
	case p.Category == "":
		return errors.New("category is required")
	case p.Brand == "":
		return errors.New("brand is required")
	case p.Price < 0:
		return errors.New("price cannot be negative")
	case p.Stock < 0:
		return errors.New("stock cannot be negative")
	}
	return nil
}
