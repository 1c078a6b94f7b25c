package dto

// ContactRequest is the body of POST /api/contact. The endpoint only checks
// presence; length and syntax rules are enforced by the form before sending.
type ContactRequest struct {
	Id      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ContactSuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

type ContactErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ContactEventMessage is published on the event bus for every delivery attempt.
type ContactEventMessage struct {
	ContactId string `json:"contact_id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Provider  string `json:"provider,omitempty"`
	Error     string `json:"error,omitempty"`
}
