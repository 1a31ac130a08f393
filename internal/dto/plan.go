package dto

// UpdatePlanRequest replaces the rule settings of a plan.
type UpdatePlanRequest struct {
	Name                    string             `json:"name" validate:"max=200"`
	StartDate               string             `json:"startDate" validate:"omitempty,isodate"`
	EndDate                 string             `json:"endDate" validate:"omitempty,isodate"`
	BlocksPerDay            int                `json:"blocksPerDay" validate:"omitempty,min=1,max=3"`
	RechtsgebieteGewichtung map[string]float64 `json:"rechtsgebieteGewichtung" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=100"`
	Verteilungsmodus        string             `json:"verteilungsmodus" validate:"omitempty,verteilungsmodus"`
}

// WizardRequest describes the setup wizard's final step.
type WizardRequest struct {
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
	// LearningDays lists weekdays, 0 = Sunday ... 6 = Saturday.
	LearningDays            []int              `json:"learningDays" validate:"required,min=1,dive,min=0,max=6"`
	BlocksPerDay            int                `json:"blocksPerDay" validate:"required,min=1,max=3"`
	Name                    string             `json:"name" validate:"max=200"`
	RechtsgebieteGewichtung map[string]float64 `json:"rechtsgebieteGewichtung" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=100"`
	Verteilungsmodus        string             `json:"verteilungsmodus" validate:"omitempty,verteilungsmodus"`
}
