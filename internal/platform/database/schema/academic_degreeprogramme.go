package schema

// AcademicDegreeProgrammeTable represents the 'academic.degreeprogramme' table
type AcademicDegreeProgrammeTable struct {
	Table string
	ID    string
	Name  string
	Level string
}

// AcademicDegreeProgramme is the schema definition for academic.degreeprogramme
var AcademicDegreeProgramme = AcademicDegreeProgrammeTable{
	Table: "academic.degreeprogramme",
	ID:    "id",
	Name:  "name",
	Level: "level",
}
