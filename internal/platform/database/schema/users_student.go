package schema

// UserStudentTable represents the 'users.student' table
type UserStudentTable struct {
	Table           string
	ID              string
	Email           string
	Name            string
	Password        string
	Gender          string
	Age             string
	EntryDate       string
	DegreeProgramme string
}

// UserStudent is the schema definition for users.student
var UserStudent = UserStudentTable{
	Table:           "users.student",
	ID:              "id",
	Email:           "email",
	Name:            "name",
	Password:        "passwordhash",
	Gender:          "gender",
	Age:             "age",
	EntryDate:       "entrydate",
	DegreeProgramme: "degreeprogramme",
}

// Columns returns all standard column names
func (t UserStudentTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Name, t.Password, t.Gender, t.Age, t.EntryDate, t.DegreeProgramme,
	}
}
