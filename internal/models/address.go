package models

type AddressType string

const (
	AddressTypeHome AddressType = "home"
	AddressTypeWork AddressType = "work"
)

// Address is the full address sent with a payment intent. It is built fresh for every order.
type Address struct {
	Type        AddressType `json:"type"`
	Street      string      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Zip         string      `json:"zip"`
	Country     string      `json:"country"`
	PhoneNumber string      `json:"phoneNumber"`
	IsDefault   bool        `json:"isDefault"`
}

// ShippingForm is what the shopper types on the checkout page.
type ShippingForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required,number,len=6"`
	Phone   string `json:"phone" validate:"required,number,len=10"`
	Country string `json:"country,omitempty"`
}

func (f ShippingForm) Address() Address {
	country := f.Country
	if country == "" {
		country = "India"
	}

	return Address{
		Type:        AddressTypeHome,
		Street:      f.Street,
		City:        f.City,
		State:       f.State,
		Zip:         f.Zip,
		Country:     country,
		PhoneNumber: f.Phone,
	}
}
