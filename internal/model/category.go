package model

// Category tags a task template by area (project work, health, study, etc.).
type Category string

const (
	CategoryProject  Category = "Project"
	CategoryWork     Category = "Work"
	CategoryStudy    Category = "Study"
	CategoryHealth   Category = "Health"
	CategoryPersonal Category = "Personal"
)

// Categories lists the known tags in display order.
func Categories() []Category {
	return []Category{CategoryProject, CategoryWork, CategoryStudy, CategoryHealth, CategoryPersonal}
}

// Valid reports whether c is one of the known tags.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
