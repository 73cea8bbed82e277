// Package provider implements remote scoring providers and the circuit
// breaker that guards them.
package provider

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"tactics_server/core/domain"
)

// =============================================================================
// Remote Result
// =============================================================================

// remoteResult is the flat record both the Dify workflow and the chat model
// are asked to produce. Workflow engines tend to stringify numbers, so
// numeric fields accept either form.
type remoteResult struct {
	ScoreIntimacy      flexNumber `json:"scoreIntimacy"`
	ScoreRoi           flexNumber `json:"scoreRoi"`
	ScoreAffinity      flexNumber `json:"scoreAffinity"`
	ScoreTotal         flexNumber `json:"scoreTotal"`
	Rank               string     `json:"rank"`
	RankReason         string     `json:"rankReason"`
	SuccessType        string     `json:"successType"`
	GiftItem           string     `json:"giftItem"`
	GiftPrice          flexNumber `json:"giftPrice"`
	GiftReason         string     `json:"giftReason"`
	GiftStory          string     `json:"giftStory"`
	Message            string     `json:"message"`
	ReturnProbability  flexNumber `json:"returnProbability"`
	ExpectedMultiplier flexNumber `json:"expectedMultiplier"`
	Questions          flexList   `json:"questions"`
	RiskWarning        string     `json:"riskWarning"`
	AllocatedBudget    flexNumber `json:"allocatedBudget"`
}

// toAnalysis maps the wire record onto the domain result. It does not
// validate; the orchestrator owns the output-shape check.
func (r *remoteResult) toAnalysis() *domain.TargetAnalysis {
	a := &domain.TargetAnalysis{
		Scores: domain.ScoreBreakdown{
			Scheme:   domain.SchemeActionWeighted,
			Intimacy: r.ScoreIntimacy.Int(),
			ROI:      r.ScoreRoi.Int(),
			GiftFit:  r.ScoreAffinity.Int(),
			Total:    r.ScoreTotal.Int(),
		},
		Rank:       domain.Rank(strings.ToUpper(strings.TrimSpace(r.Rank))),
		RankReason: r.RankReason,
		Outcome:    domain.OutcomeType(strings.TrimSpace(r.SuccessType)),
		Gift: domain.GiftSuggestion{
			Item:   r.GiftItem,
			Price:  r.GiftPrice.Int(),
			Reason: r.GiftReason,
			Story:  r.GiftStory,
		},
		Message: r.Message,
		RoiPrediction: domain.RoiPrediction{
			ReturnProbability:  float64(r.ReturnProbability),
			ExpectedMultiplier: float64(r.ExpectedMultiplier),
		},
		Questions:       []string(r.Questions),
		RiskWarning:     r.RiskWarning,
		AllocatedBudget: r.AllocatedBudget.Int(),
	}
	if a.Questions == nil {
		a.Questions = []string{}
	}
	if a.RiskWarning != "" {
		a.RiskWarnings = []string{a.RiskWarning}
	}
	return a
}

// flexNumber decodes a JSON number, a numeric string or null.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

// Int rounds to the nearest integer.
func (n flexNumber) Int() int {
	f := float64(n)
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

// flexList decodes a JSON string array, or a single newline-separated string.
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		*l = out
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// =============================================================================
// Prompt Inputs
// =============================================================================

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// workflowInputs flattens a profile into the string map workflow engines expect.
func workflowInputs(t *domain.TargetProfile) map[string]string {
	returnValue := "unknown"
	if t.ReturnValue != nil {
		returnValue = strconv.Itoa(*t.ReturnValue)
	}

	actions := make([]string, len(t.RecipientActions))
	for i, a := range t.RecipientActions {
		actions[i] = string(a)
	}

	return map[string]string{
		"name":                        t.Name,
		"relationship":                string(t.Relationship),
		"benefit_type":                string(t.BenefitType),
		"personality":                 strings.Join(t.Personality, ", "),
		"preferences":                 strings.Join(t.Preferences, ", "),
		"recent_interests":            t.RecentInterests,
		"gift_reaction":               string(t.GiftReaction),
		"recipient_actions":           strings.Join(actions, ", "),
		"recent_episodes":             t.RecentEpisodes,
		"relationship_goal":           string(t.RelationshipGoal),
		"emotional_priority":          strconv.Itoa(t.EmotionalPriority),
		"giri_awareness":              string(t.GiriAwareness),
		"return_tendency":             string(t.ReturnTendency),
		"gave_last_year":              yesNo(t.GaveLastYear),
		"received_return":             yesNo(t.ReceivedReturn),
		"return_value":                returnValue,
		"gave_year_before":            yesNo(t.GaveYearBefore),
		"received_return_year_before": yesNo(t.ReceivedReturnYearBefore),
		"budget":                      strconv.Itoa(t.Budget),
		"memo":                        t.Memo,
	}
}
