package domain

// MaxBatchTargets bounds bulk analysis and plan requests.
const MaxBatchTargets = 20

// BulkAnalyzeRequest analyzes several targets independently.
type BulkAnalyzeRequest struct {
	Targets []*TargetProfile `json:"targets" yaml:"targets" validate:"min=1,max=20,dive,required"`
}

// PlanRequest builds a batch plan under one total budget.
type PlanRequest struct {
	Targets     []*TargetProfile `json:"targets" yaml:"targets" validate:"min=1,max=20,dive,required"`
	TotalBudget int              `json:"totalBudget" yaml:"totalBudget" validate:"min=100,max=1000000"`
}
