package models

// RecommendJobsRequest is the payload for POST /api/v1/jobs/recommended.
type RecommendJobsRequest struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

// OutreachRequest asks for the top-N candidates matching the filters to be
// emailed with the given message.
type OutreachRequest struct {
	Filters SearchFilters `json:"filters"`
	Subject string        `json:"subject" validate:"required,max=200"`
	HTML    string        `json:"html" validate:"required"`
	TopN    int           `json:"top_n,omitempty" validate:"omitempty,min=1,max=100"`
}

// OTPRequest asks for a one-time code to be emailed.
type OTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=signup login reset_password"`
}

// OTPVerifyRequest submits a previously issued code for verification.
type OTPVerifyRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=signup login reset_password"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
}

// ExtractProfileRequest carries raw resume text for AI extraction.
type ExtractProfileRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=20"`
}
