package model

// PhoneNotProvided is stored when a contact form submission omits a phone number.
const PhoneNotProvided = "Not provided"

// Submission represents a contact form submission
type Submission struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Valid reports whether the submission can be listed.
func (s *Submission) Valid() bool {
	return s != nil && s.ID != "" && s.Timestamp != ""
}
