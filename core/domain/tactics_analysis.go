package domain

// Scheme names a scoring scheme.
type Scheme string

const (
	SchemeActionWeighted Scheme = "action_weighted" // single-target, 3-axis with rank overrides
	SchemeBatchPrior     Scheme = "batch_prior"     // batch, relationship-type prior
)

// ScoreBreakdown holds the sub-scores of one scheme plus the weighted total.
// Axes that the scheme does not use stay zero and are omitted from JSON.
type ScoreBreakdown struct {
	Scheme       Scheme `json:"scheme" validate:"oneof=action_weighted batch_prior"`
	Intimacy     int    `json:"intimacy,omitempty" validate:"min=0,max=100"`
	ROI          int    `json:"roi" validate:"min=0,max=100"`
	GiftFit      int    `json:"giftFit,omitempty" validate:"min=0,max=100"`
	Relationship int    `json:"relationship,omitempty" validate:"min=0,max=100"`
	Emotion      int    `json:"emotion,omitempty" validate:"min=0,max=100"`
	Total        int    `json:"total" validate:"min=0,max=100"`
}

// SubScores returns the named axes used by the breakdown's scheme.
func (s ScoreBreakdown) SubScores() map[string]int {
	if s.Scheme == SchemeBatchPrior {
		return map[string]int{
			"roi":          s.ROI,
			"relationship": s.Relationship,
			"emotion":      s.Emotion,
		}
	}
	return map[string]int{
		"intimacy": s.Intimacy,
		"roi":      s.ROI,
		"giftFit":  s.GiftFit,
	}
}

// Rank is a coarse priority tier, S highest.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
)

// AllRanks lists ranks from highest to lowest.
var AllRanks = []Rank{RankS, RankA, RankB, RankC}

// Value orders ranks: S=4 .. C=1. Unknown ranks are 0.
func (r Rank) Value() int {
	switch r {
	case RankS:
		return 4
	case RankA:
		return 3
	case RankB:
		return 2
	case RankC:
		return 1
	default:
		return 0
	}
}

// Higher returns the next tier up; S stays S.
func (r Rank) Higher() Rank {
	switch r {
	case RankA:
		return RankS
	case RankB:
		return RankA
	case RankC:
		return RankB
	default:
		return r
	}
}

// Lower returns the next tier down; C stays C.
func (r Rank) Lower() Rank {
	switch r {
	case RankS:
		return RankA
	case RankA:
		return RankB
	case RankB:
		return RankC
	default:
		return r
	}
}

// OutcomeType is the predicted nature of the gift interaction.
type OutcomeType string

const (
	OutcomeFullSuccess          OutcomeType = "full_success"
	OutcomeInvestment           OutcomeType = "investment"
	OutcomeEmotional            OutcomeType = "emotional"
	OutcomeRelationshipBuilding OutcomeType = "relationship_building"
	OutcomeCutLoss              OutcomeType = "cut_loss"
	OutcomeNeedsReview          OutcomeType = "needs_review"
	OutcomeNeedsRethink         OutcomeType = "needs_rethink" // batch table only
)

// GiftSuggestion is the recommended item for a target.
type GiftSuggestion struct {
	Item   string `json:"item" validate:"required,max=100"`
	Price  int    `json:"price" validate:"min=0"`
	Reason string `json:"reason" validate:"max=200"`
	Story  string `json:"story" validate:"max=1000"`
}

// RoiPrediction is the expected reciprocation for a target.
type RoiPrediction struct {
	ReturnProbability  float64 `json:"returnProbability" validate:"min=0,max=1"`
	ExpectedMultiplier float64 `json:"expectedMultiplier" validate:"min=0,max=10"`
}

// Source values for TargetAnalysis.Source.
const (
	SourceLocal = "local"
)

// TargetAnalysis is the single-target result record. The validate tags are
// the output-shape contract applied to local and remote results alike.
type TargetAnalysis struct {
	Scores          ScoreBreakdown `json:"scores"`
	BaseRank        Rank           `json:"baseRank,omitempty" validate:"omitempty,oneof=S A B C"`
	Rank            Rank           `json:"rank" validate:"oneof=S A B C"`
	RankReason      string         `json:"rankReason" validate:"max=300"`
	Outcome         OutcomeType    `json:"outcome" validate:"oneof=full_success investment emotional relationship_building cut_loss needs_review"`
	Gift            GiftSuggestion `json:"giftSuggestion"`
	Message         string         `json:"message" validate:"required,max=500"`
	RoiPrediction   RoiPrediction  `json:"roiPrediction"`
	Questions       []string       `json:"questions" validate:"max=5,dive,max=400"`
	RiskWarnings    []string       `json:"riskWarnings"`
	RiskWarning     string         `json:"riskWarning" validate:"max=1000"`
	AllocatedBudget int            `json:"allocatedBudget" validate:"min=0"`
	Source          string         `json:"source"`
}

// PlannedTarget is one target inside a batch plan.
type PlannedTarget struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Relationship      Relationship   `json:"relationship"`
	EmotionalPriority int            `json:"emotionalPriority"`
	Scores            ScoreBreakdown `json:"scores"`
	Rank              Rank           `json:"rank"`
	RankReason        string         `json:"rankReason"`
	Outcome           OutcomeType    `json:"outcome"`
	AllocatedBudget   int            `json:"allocatedBudget"`
	Gift              GiftSuggestion `json:"giftSuggestion"`
	Message           string         `json:"message"`
	RoiPrediction     RoiPrediction  `json:"roiPrediction"`
}

// TimelineItem is one dated step of a plan.
type TimelineItem struct {
	Date   string `json:"date"`
	Action string `json:"action"`
}

// Plan is the batch result record.
type Plan struct {
	ID          string          `json:"id"`
	TotalBudget int             `json:"totalBudget"`
	Targets     []PlannedTarget `json:"targets"`
	Allocations map[string]int  `json:"allocations"`
	Timeline    []TimelineItem  `json:"timeline"`
	Warnings    []string        `json:"warnings"`
}
