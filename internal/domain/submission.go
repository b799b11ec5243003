package domain

import "time"

// FormSubmission represents one questionnaire sent through the bot.
// None of the fields are validated; the shape is a convention.
type FormSubmission struct {
	ID        string    `json:"id,omitempty"`
	Company   string    `json:"company"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// SampleSubmission returns the fixed test record used by the playground
func SampleSubmission(now time.Time) FormSubmission {
	return FormSubmission{
		Company:   "Test Corp",
		Name:      "Test User",
		Email:     "test@corp.com",
		Phone:     "+77000000000",
		CreatedAt: now,
	}
}

// SameFields reports whether two submissions carry the same user-supplied
// values, ignoring the store-assigned ID.
func (s FormSubmission) SameFields(other FormSubmission) bool {
	return s.Company == other.Company &&
		s.Name == other.Name &&
		s.Email == other.Email &&
		s.Phone == other.Phone &&
		s.CreatedAt.Equal(other.CreatedAt)
}
