package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tactics_server/core/domain"
	"tactics_server/core/service/ranking"
	"tactics_server/core/service/recommend"
	"tactics_server/core/service/scoring"
	"tactics_server/pkg/apperr"
)

// Validator checks profiles on the way in and analyses on the way out.
// It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Profile validates caller input. Failures are VALIDATION_FAILED.
func (v *Validator) Profile(t *domain.TargetProfile) error {
	if t == nil {
		return apperr.InvalidInput("target", "missing")
	}
	if err := v.v.Struct(t); err != nil {
		return apperr.ValidationFailed(describe(err), err).WithDetail("target", t.Name)
	}
	return nil
}

// Struct validates any tagged request struct.
func (v *Validator) Struct(s any) error {
	if err := v.v.Struct(s); err != nil {
		return apperr.ValidationFailed(describe(err), err)
	}
	return nil
}

// Analysis enforces the output-shape contract: every score in [0,100], a
// known rank and outcome, a gift priced within the target's budget, a story
// only for intangible benefit, a non-empty message and at most five questions.
func (v *Validator) Analysis(a *domain.TargetAnalysis, t *domain.TargetProfile) error {
	if a == nil {
		return errors.New("analysis is nil")
	}
	if err := v.v.Struct(a); err != nil {
		return fmt.Errorf("output shape: %s", describe(err))
	}
	if err := scoring.CheckBreakdown(a.Scores); err != nil {
		return fmt.Errorf("output shape: %w", err)
	}
	if a.Gift.Price > t.Budget {
		return fmt.Errorf("output shape: gift price %d exceeds budget %d", a.Gift.Price, t.Budget)
	}
	hasStory := strings.TrimSpace(a.Gift.Story) != ""
	switch {
	case t.BenefitType == domain.BenefitIntangible && !hasStory:
		return errors.New("output shape: story is required for intangible benefit")
	case t.BenefitType != domain.BenefitIntangible && hasStory:
		return errors.New("output shape: story must be empty for tangible benefit")
	}
	return nil
}

// Accept fills the fields a remote provider may omit, then validates the
// result like a local one.
func (v *Validator) Accept(res *domain.TargetAnalysis, t *domain.TargetProfile) error {
	if res == nil {
		return errors.New("empty result")
	}
	if res.AllocatedBudget == 0 {
		res.AllocatedBudget = t.Budget
	}
	if res.Outcome == "" {
		res.Outcome = ranking.Outcome(t, res.Scores)
	}
	if res.RiskWarning == "" && len(res.RiskWarnings) > 0 {
		res.RiskWarning = recommend.JoinWarnings(res.RiskWarnings)
	}
	return v.Analysis(res, t)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
