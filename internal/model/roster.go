package model

// Faculty is a roster entry for a mentor.
type Faculty struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Student is a roster entry mapping a register number to its section and mentor.
type Student struct {
	RegisterNumber string `json:"register_number"`
	Name           string `json:"name"`
	Section        string `json:"section"`
	FacultyID      string `json:"faculty_id"`
}
