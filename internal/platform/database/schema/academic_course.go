package schema

// AcademicCourseTable represents the 'academic.course' table
type AcademicCourseTable struct {
	Table string
	ID    string
	Name  string
}

// AcademicCourse is the schema definition for academic.course
var AcademicCourse = AcademicCourseTable{
	Table: "academic.course",
	ID:    "id",
	Name:  "name",
}
