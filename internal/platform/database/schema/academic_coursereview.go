package schema

// AcademicCourseReviewTable represents the 'academic.coursereview' table
type AcademicCourseReviewTable struct {
	Table           string
	ID              string
	StudentID       string
	CourseID        string
	OverallScore    string
	EasinessScore   string
	InterestScore   string
	UsefulnessScore string
	TeachingScore   string
	Comment         string
	CreatedAt       string
}

// AcademicCourseReview is the schema definition for academic.coursereview
var AcademicCourseReview = AcademicCourseReviewTable{
	Table:           "academic.coursereview",
	ID:              "id",
	StudentID:       "studentid",
	CourseID:        "courseid",
	OverallScore:    "overallscore",
	EasinessScore:   "easinessscore",
	InterestScore:   "interestscore",
	UsefulnessScore: "usefulnessscore",
	TeachingScore:   "teachingscore",
	Comment:         "comment",
	CreatedAt:       "createdat",
}

// Columns returns all standard column names
func (t AcademicCourseReviewTable) Columns() []string {
	return []string{
		t.ID, t.StudentID, t.CourseID, t.OverallScore, t.EasinessScore,
		t.InterestScore, t.UsefulnessScore, t.TeachingScore, t.Comment, t.CreatedAt,
	}
}
