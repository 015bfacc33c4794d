package models

// EmailData is the transient input to the group messaging workflow. It is
// never persisted; on a failed send the caller redisplays it unchanged so
// the user's draft is not lost.
type EmailData struct {
	CategoryID   string `json:"category_id"`
	GroupName    string `json:"group_name"`
	EmailAddress string `json:"email_address"` // recipients joined with ";"
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
}

func (e *EmailData) Validate() error {
	if e.EmailAddress == "" {
		return ErrEmailRecipientsRequired
	}
	if e.EmailSubject == "" {
		return ErrEmailSubjectRequired
	}
	return nil
}

// Common errors
var (
	ErrEmailRecipientsRequired = &ValidationError{Field: "email_address", Message: "At least one recipient is required"}
	ErrEmailSubjectRequired    = &ValidationError{Field: "email_subject", Message: "Subject is required"}
)
