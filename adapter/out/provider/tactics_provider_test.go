package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics_server/core/domain"
	"tactics_server/pkg/apperr"
	"tactics_server/pkg/httputil"
)

func profile() *domain.TargetProfile {
	rv := 1500
	return &domain.TargetProfile{
		Name:              "Sato",
		Relationship:      domain.RelationshipColleague,
		BenefitType:       domain.BenefitTangible,
		Preferences:       []string{domain.PrefCoffeeLover, domain.PrefSweetTooth},
		GiftReaction:      domain.ReactionModest,
		RelationshipGoal:  domain.GoalMaintain,
		EmotionalPriority: 3,
		GiriAwareness:     domain.GiriSeenAsObligatory,
		ReturnTendency:    domain.ReturnReliable,
		GaveLastYear:      true,
		ReceivedReturn:    true,
		ReturnValue:       &rv,
		Budget:            2000,
	}
}

func TestWorkflowInputs(t *testing.T) {
	in := workflowInputs(profile())
	assert.Equal(t, "colleague", in["relationship"])
	assert.Equal(t, "coffee_lover, sweet_tooth", in["preferences"])
	assert.Equal(t, "yes", in["gave_last_year"])
	assert.Equal(t, "no", in["gave_year_before"])
	assert.Equal(t, "1500", in["return_value"])
	assert.Equal(t, "2000", in["budget"])

	p := profile()
	p.ReturnValue = nil
	assert.Equal(t, "unknown", workflowInputs(p)["return_value"])
}

func TestDifyProvider(t *testing.T) {
	var got difyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/workflows/run", r.URL.Path)
		assert.Equal(t, "Bearer app-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"status":"succeeded","outputs":{
			"scoreIntimacy":"62","scoreRoi":81,"scoreAffinity":70.4,"scoreTotal":"74",
			"rank":"a","rankReason":"Reliable returner","successType":"investment",
			"giftItem":"Specialty coffee beans","giftPrice":"1800","giftReason":"Coffee lover",
			"giftStory":"","message":"Thanks for always helping out.",
			"returnProbability":0.85,"expectedMultiplier":"1.2",
			"questions":"What roast do they like?\nDo they brew at work?",
			"riskWarning":""}}}`))
	}))
	defer srv.Close()

	p, err := NewDifyProvider(&DifyConfig{BaseURL: srv.URL + "/", APIKey: "app-key", Timeout: time.Second})
	require.NoError(t, err)

	res, err := p.Analyze(context.Background(), profile())
	require.NoError(t, err)

	assert.Equal(t, "blocking", got.ResponseMode)
	assert.Equal(t, "valentactics-system", got.User)
	assert.Equal(t, "Sato", got.Inputs["name"])

	assert.Equal(t, domain.ScoreBreakdown{
		Scheme: domain.SchemeActionWeighted, Intimacy: 62, ROI: 81, GiftFit: 70, Total: 74,
	}, res.Scores)
	assert.Equal(t, domain.RankA, res.Rank)
	assert.Equal(t, domain.OutcomeInvestment, res.Outcome)
	assert.Equal(t, 1800, res.Gift.Price)
	assert.InDelta(t, 1.2, res.RoiPrediction.ExpectedMultiplier, 1e-9)
	assert.Equal(t, []string{"What roast do they like?", "Do they brew at work?"}, res.Questions)
	assert.Empty(t, res.RiskWarnings)
}

func TestDifyProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"status":"failed","error":"node timeout"}}`))
	}))
	defer srv.Close()

	bad, err := NewDifyProvider(&DifyConfig{BaseURL: srv.URL, APIKey: "bad"})
	require.NoError(t, err)
	_, err = bad.Analyze(context.Background(), profile())
	var statusErr *httputil.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)

	failed, err := NewDifyProvider(&DifyConfig{BaseURL: srv.URL, APIKey: "good"})
	require.NoError(t, err)
	_, err = failed.Analyze(context.Background(), profile())
	assert.ErrorContains(t, err, "node timeout")

	_, err = NewDifyProvider(&DifyConfig{BaseURL: srv.URL})
	assert.Error(t, err)
}

func TestParseCompletion(t *testing.T) {
	res, err := parseCompletion(`{"rank":"S","scoreTotal":88,"questions":["Q1"]}`)
	require.NoError(t, err)
	assert.Equal(t, "S", res.Rank)
	assert.Equal(t, 88, res.ScoreTotal.Int())

	res, err = parseCompletion(`{"rank": "B", "giftItem": "Tea set", "giftPrice": 1200,}`)
	require.NoError(t, err, "trailing comma is repaired")
	assert.Equal(t, "Tea set", res.GiftItem)
	assert.Equal(t, 1200, res.GiftPrice.Int())

	res, err = parseCompletion(`{"rank": "C", "message": "Thanks"`)
	require.NoError(t, err, "truncated object is repaired")
	assert.Equal(t, "Thanks", res.Message)

	_, err = parseCompletion("   ")
	assert.Error(t, err)
}

func TestOpenAIProvider(t *testing.T) {
	var model string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		var req struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &req))
		model = req.Model
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		content := `{"scoreIntimacy":40,"scoreRoi":55,"scoreAffinity":60,"scoreTotal":52,"rank":"B","successType":"investment","giftItem":"Drip coffee set","giftPrice":900,"message":"Thank you!","returnProbability":0.6,"expectedMultiplier":1.1,"questions":[],}`
		reply := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider(&OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)

	res, err := p.Analyze(context.Background(), profile())
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, model)
	assert.Equal(t, domain.RankB, res.Rank)
	assert.Equal(t, "Drip coffee set", res.Gift.Item)
	assert.Equal(t, 900, res.Gift.Price)
	assert.Equal(t, []string{}, res.Questions)

	_, err = NewOpenAIProvider(&OpenAIConfig{})
	assert.Error(t, err)
}

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) Analyze(context.Context, *domain.TargetProfile) (*domain.TargetAnalysis, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &domain.TargetAnalysis{Rank: domain.RankB}, nil
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &countingProvider{err: errors.New("upstream down")}
	cfg := DefaultBreakerConfig()
	cfg.ConsecutiveFailures = 2
	cfg.Timeout = time.Hour

	p := NewBreakerProvider(inner, cfg, zerolog.Nop())
	assert.Equal(t, "counting", p.Name())

	for i := 0; i < 3; i++ {
		_, err := p.Analyze(context.Background(), profile())
		require.ErrorContains(t, err, "upstream down")
	}
	assert.True(t, p.IsOpen())

	_, err := p.Analyze(context.Background(), profile())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), inner.calls.Load(), "open circuit does not reach the provider")
}

func TestBreakerCountsRejectedResultsAsFailures(t *testing.T) {
	inner := &countingProvider{}
	cfg := DefaultBreakerConfig()
	cfg.ConsecutiveFailures = 2
	cfg.Timeout = time.Hour
	cfg.Check = func(res *domain.TargetAnalysis, _ *domain.TargetProfile) error {
		return errors.New("rank " + string(res.Rank) + " not allowed")
	}
	p := NewBreakerProvider(inner, cfg, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := p.Analyze(context.Background(), profile())
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidOutput))
	}
	assert.True(t, p.IsOpen())

	for i := 0; i < 10; i++ {
		_, err := p.Analyze(context.Background(), profile())
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	}
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestBreakerPassesResults(t *testing.T) {
	p := NewBreakerProvider(&countingProvider{}, nil, zerolog.Nop())
	res, err := p.Analyze(context.Background(), profile())
	require.NoError(t, err)
	assert.Equal(t, domain.RankB, res.Rank)
	assert.False(t, p.IsOpen())
}

func TestFactory(t *testing.T) {
	p, err := New(&FactoryConfig{Kind: "none"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = New(&FactoryConfig{
		Kind:    KindDify,
		Dify:    &DifyConfig{BaseURL: "http://dify.local", APIKey: "k"},
		Breaker: DefaultBreakerConfig(),
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &BreakerProvider{}, p)
	assert.Equal(t, "dify", p.Name())

	p, err = New(&FactoryConfig{Kind: KindOpenAI, OpenAI: &OpenAIConfig{APIKey: "k"}}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)

	_, err = New(&FactoryConfig{Kind: "anthropic"}, zerolog.Nop())
	assert.Error(t, err)

	_, err = New(&FactoryConfig{Kind: KindOpenAI}, zerolog.Nop())
	assert.Error(t, err)
}
