package domain

// Supplier is a directory entry. No uniqueness is enforced and entries
// are append-only.
type Supplier struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
