package dtos

// ApplicationPayload is the body of create and update requests.
// A nil field means the client did not send it.
type ApplicationPayload struct {
	CompanyName    *string  `json:"companyName"`
	Role           *string  `json:"role"`
	JobDescription *string  `json:"jobDescription"`
	JobCategory    *string  `json:"jobCategory"`
	Seniority      *string  `json:"seniority"`
	Salary         *float64 `json:"salary"`
	Status         *string  `json:"status"`
	TechnicalStage *string  `json:"technicalStage"`
}

// IsEmpty reports whether no editable field was supplied.
func (p ApplicationPayload) IsEmpty() bool {
	return p.CompanyName == nil &&
		p.Role == nil &&
		p.JobDescription == nil &&
		p.JobCategory == nil &&
		p.Seniority == nil &&
		p.Salary == nil &&
		p.Status == nil &&
		p.TechnicalStage == nil
}

type ApplicationListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
}

type PostingExtractionRequest struct {
	RawHTML string `json:"rawHtml" binding:"required"`
	URL     string `json:"url"`
}
