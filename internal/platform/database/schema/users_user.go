package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table     string
	ID        string
	Username  string
	Password  string
	CreatedAt string
}

// User is the schema definition for users
var User = UserTable{
	Table:     "users",
	ID:        "id",
	Username:  "username",
	Password:  "hashed_password",
	CreatedAt: "created_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Username, t.Password, t.CreatedAt}
}
