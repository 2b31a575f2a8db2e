package course

type CreateCourseRequest struct {
	Code     string `form:"course_id" binding:"required"`
	Name     string `form:"course_name" binding:"required"`
	Type     string `form:"course_type"`
	Lecturer string `form:"lecturer"`
}

type UpdateCourseRequest struct {
	Code     string   `json:"course_id" binding:"required"`
	Name     string   `json:"course_name" binding:"required"`
	Type     string   `json:"course_type"`
	Lecturer string   `json:"lecturer"`
	Students []string `json:"student_list"`
}

// CourseInfo is the roster-management view of a course (no banner resolution).
type CourseInfo struct {
	Idx       string   `json:"idx"`
	CreatedAt string   `json:"created_at"`
	Code      string   `json:"course_id"`
	Name      string   `json:"course_name"`
	Type      string   `json:"course_type"`
	Lecturer  string   `json:"lecturer"`
	Active    bool     `json:"active"`
	Students  []string `json:"student_list"`
}

// CourseCard is the learner-facing view including banner urls.
type CourseCard struct {
	Idx       string        `json:"idx"`
	CreatedAt string        `json:"created_at"`
	Code      string        `json:"course_id"`
	Name      string        `json:"course_name"`
	Lecturer  string        `json:"lecturer"`
	Active    bool          `json:"active"`
	Banner    []BannerImage `json:"banner"`
}

type BannerImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
