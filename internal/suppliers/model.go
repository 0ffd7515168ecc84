package suppliers

// Supplier is a supplier contact row. Rows are immutable once inserted;
// all fields are persisted verbatim, including empty strings for unfilled
// optional fields.
type Supplier struct {
	ID           int64
	ContactType  string
	ContactID    string
	BusinessName string
	Prefix       string
	FirstName    string
	MiddleName   string
	LastName     string
	Mobile       string
	AltContact   string
	Landline     string
	Email        string
	DOB          string
}

// Category is a product category, listed alongside suppliers on the form
// page. The categories table is optional.
type Category struct {
	ID   int64
	Name string
}
