package models

type JobCategory string

const (
	JobCategoryTech    JobCategory = "TECH"
	JobCategoryNonTech JobCategory = "NON_TECH"
)

func (c JobCategory) Valid() bool {
	switch c {
	case JobCategoryTech, JobCategoryNonTech:
		return true
	default:
		return false
	}
}

type Seniority string

const (
	SeniorityNone   Seniority = "NONE"
	SeniorityJunior Seniority = "JUNIOR"
	SeniorityMid    Seniority = "MID"
	SenioritySenior Seniority = "SENIOR"
)

func (s Seniority) Valid() bool {
	switch s {
	case SeniorityNone, SeniorityJunior, SeniorityMid, SenioritySenior:
		return true
	default:
		return false
	}
}

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusHired     ApplicationStatus = "HIRED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusHired:
		return true
	default:
		return false
	}
}

type TechnicalStage string

const (
	StageNone               TechnicalStage = "NONE"
	StageTechnicalInterview TechnicalStage = "TECHNICAL_INTERVIEW"
	StageTechnicalTest      TechnicalStage = "TECHNICAL_TEST"
	StageLiveCoding         TechnicalStage = "LIVE_CODING"
	StageSystemDesign       TechnicalStage = "SYSTEM_DESIGN"
)

func (s TechnicalStage) Valid() bool {
	switch s {
	case StageNone, StageTechnicalInterview, StageTechnicalTest, StageLiveCoding, StageSystemDesign:
		return true
	default:
		return false
	}
}
