package schema

// AdminsAccountTable represents the 'admins.account' table
type AdminsAccountTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Enabled      string
	CreatedAt    string
	UpdatedAt    string
}

// AdminsAccount is the schema definition for admins.account
var AdminsAccount = AdminsAccountTable{
	Table:        "admins.account",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	PasswordHash: "passwordhash",
	Role:         "role",
	Enabled:      "enabled",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns lists every column in table order.
func (t AdminsAccountTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.PasswordHash, t.Role, t.Enabled, t.CreatedAt, t.UpdatedAt}
}
