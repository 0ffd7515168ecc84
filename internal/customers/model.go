package customers

import "time"

// Customer is a customer row. Rows are immutable once inserted; the
// application offers no update or delete path.
type Customer struct {
	ID         int64
	Name       string
	FatherName string
	Email      string
	Phone      string
	Whatsapp   string
	Address    string
	State      string
	Pincode    string
	CreatedAt  time.Time
}

// CreateCustomerForm carries the trimmed customer form fields. Name and
// phone are the only required fields.
type CreateCustomerForm struct {
	Name       string `validate:"required"`
	FatherName string
	Email      string
	Phone      string `validate:"required"`
	Whatsapp   string
	Address    string
	State      string
	Pincode    string
}
