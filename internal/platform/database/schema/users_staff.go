package schema

// UserStaffTable represents the 'users.staff' table
type UserStaffTable struct {
	Table    string
	ID       string
	Email    string
	Name     string
	Password string
	Gender   string
}

// UserStaff is the schema definition for users.staff
var UserStaff = UserStaffTable{
	Table:    "users.staff",
	ID:       "id",
	Email:    "email",
	Name:     "name",
	Password: "passwordhash",
	Gender:   "gender",
}

// Columns returns all standard column names
func (t UserStaffTable) Columns() []string {
	return []string{t.ID, t.Email, t.Name, t.Password, t.Gender}
}
