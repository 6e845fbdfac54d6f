package schema

// AcademicCourseProgrammeTable represents the 'academic.courseprogramme' join table
type AcademicCourseProgrammeTable struct {
	Table       string
	CourseID    string
	ProgrammeID string
}

// AcademicCourseProgramme is the schema definition for academic.courseprogramme
var AcademicCourseProgramme = AcademicCourseProgrammeTable{
	Table:       "academic.courseprogramme",
	CourseID:    "courseid",
	ProgrammeID: "programmeid",
}
