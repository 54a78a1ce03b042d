package domain

// Subjects returns the practice categories in drawer order.
func Subjects() []Subject {
	return []Subject{
		{ID: "nepal", Name: "nepal", Color: "#4CAF50", QuestionCount: 20},
		{ID: "physiology", Name: "Physiology", Color: "#2196F3", QuestionCount: 15},
		{ID: "biochemistry", Name: "Biochemistry", Color: "#9C27B0", QuestionCount: 12},
		{ID: "pathology", Name: "Pathology", Color: "#F44336", QuestionCount: 18},
		{ID: "pharmacology", Name: "Pharmacology", Color: "#FF9800", QuestionCount: 10},
		{ID: "math", Name: "Math", Color: "#3F51B5", QuestionCount: 25},
	}
}

// FindSubject looks a subject up by id.
func FindSubject(id string) (Subject, bool) {
	for _, s := range Subjects() {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// Faculties returns the landing-page faculties.
func Faculties() []Faculty {
	return []Faculty{
		{Name: "Medical", Color: "error.main", QuestionCount: 520},
		{Name: "Engineering", Color: "warning.main", QuestionCount: 650},
		{Name: "Science", Color: "success.main", QuestionCount: 580},
		{Name: "Management", Color: "info.main", QuestionCount: 490},
		{Name: "Law", Color: "secondary.main", QuestionCount: 320},
		{Name: "Arts", Color: "primary.main", QuestionCount: 210},
		{Name: "Agriculture", Color: "success.dark", QuestionCount: 180},
	}
}
