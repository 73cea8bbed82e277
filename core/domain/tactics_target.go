package domain

// Relationship is how the giver relates to the target.
type Relationship string

const (
	RelationshipBoss             Relationship = "boss"
	RelationshipColleague        Relationship = "colleague"
	RelationshipFriend           Relationship = "friend"
	RelationshipRomanticInterest Relationship = "romantic_interest"
	RelationshipPartner          Relationship = "partner"
	RelationshipOther            Relationship = "other"
)

// IsRomantic reports whether a romantic signal is expected for this relationship.
func (r Relationship) IsRomantic() bool {
	return r == RelationshipRomanticInterest || r == RelationshipPartner
}

// BenefitType selects what the giver optimizes for.
type BenefitType string

const (
	BenefitTangible   BenefitType = "tangible"   // reciprocal value (ROI)
	BenefitIntangible BenefitType = "intangible" // affinity and emotional return
)

// RelationshipGoal is where the giver wants the relationship to go.
type RelationshipGoal string

const (
	GoalMaintain   RelationshipGoal = "maintain"
	GoalDeepen     RelationshipGoal = "deepen"
	GoalObligatory RelationshipGoal = "obligatory"
	GoalDistance   RelationshipGoal = "distance"
)

// GiriAwareness describes how an obligatory gift is likely to be read.
type GiriAwareness string

const (
	GiriSeenAsObligatory GiriAwareness = "seen_as_obligatory"
	GiriMaySeemRomantic  GiriAwareness = "may_seem_romantic"
	GiriUnknown          GiriAwareness = "unknown"
)

// ReturnTendency is the target's habit of returning gifts.
type ReturnTendency string

const (
	ReturnReliable     ReturnTendency = "reliable"
	ReturnMoody        ReturnTendency = "moody"
	ReturnNeverReturns ReturnTendency = "never_returns"
	ReturnUnknown      ReturnTendency = "unknown"
)

// GiftReaction is how the target usually receives a gift.
type GiftReaction string

const (
	ReactionDelighted   GiftReaction = "delighted"
	ReactionModest      GiftReaction = "modest"
	ReactionEmbarrassed GiftReaction = "embarrassed"
	ReactionUnknown     GiftReaction = "unknown"
)

// RecipientAction is an observed behavior of the target toward the giver.
type RecipientAction string

const (
	ActionContactsMe             RecipientAction = "contacts_me"
	ActionSharesPrivateTopics    RecipientAction = "shares_private_topics"
	ActionInvitesToMeals         RecipientAction = "invites_to_meals"
	ActionAsksForAdvice          RecipientAction = "asks_for_advice"
	ActionRemembersEvents        RecipientAction = "remembers_events"
	ActionMakesOneOnOneTime      RecipientAction = "makes_one_on_one_time"
	ActionNoticesChanges         RecipientAction = "notices_changes"
	ActionRemembersConversations RecipientAction = "remembers_conversations"
	ActionShowsVulnerability     RecipientAction = "shows_vulnerability"
)

// Preference tags drive gift selection only.
const (
	PrefSweetTooth      = "sweet_tooth"
	PrefSavoryTooth     = "savory_tooth"
	PrefDrinksAlcohol   = "drinks_alcohol"
	PrefCoffeeLover     = "coffee_lover"
	PrefTeaLover        = "tea_lover"
	PrefWagashiFan      = "wagashi_fan"
	PrefGourmet         = "gourmet"
	PrefHealthConscious = "health_conscious"
	PrefOutdoorsy       = "outdoorsy"
	PrefHomebody        = "homebody"
	PrefFashionLover    = "fashion_lover"
	PrefBookworm        = "bookworm"
	PrefGadgetLover     = "gadget_lover"
	PrefBrandConscious  = "brand_conscious"
	PrefValueSeeker     = "value_seeker"
	PrefValuesHandmade  = "values_handmade"
	PrefPractical       = "practical"
	PrefSurpriseLover   = "surprise_lover"
	PrefPrefersClassics = "prefers_classics"
)

// TargetProfile is the validated input for one analysis call.
// Validation tags are enforced by callers at the boundary; the scoring core trusts its input.
type TargetProfile struct {
	ID           string       `json:"id,omitempty" yaml:"id"`
	Name         string       `json:"name" yaml:"name" validate:"required,max=20"`
	Relationship Relationship `json:"relationship" yaml:"relationship" validate:"oneof=boss colleague friend romantic_interest partner other"`
	BenefitType  BenefitType  `json:"benefitType" yaml:"benefitType" validate:"oneof=tangible intangible"`
	Gender       string       `json:"gender,omitempty" yaml:"gender" validate:"omitempty,oneof=male female other unanswered"`
	AgeGroup     string       `json:"ageGroup,omitempty" yaml:"ageGroup" validate:"omitempty,oneof=teens 20s 30s 40s 50s+"`

	Personality     []string     `json:"personality" yaml:"personality" validate:"max=8,unique,dive,oneof=meticulous easygoing particular sociable shy rational emotional own_pace"`
	Preferences     []string     `json:"preferences" yaml:"preferences" validate:"max=19,unique,dive,oneof=sweet_tooth savory_tooth drinks_alcohol coffee_lover tea_lover wagashi_fan gourmet health_conscious outdoorsy homebody fashion_lover bookworm gadget_lover brand_conscious value_seeker values_handmade practical surprise_lover prefers_classics"`
	RecentInterests string       `json:"recentInterests" yaml:"recentInterests" validate:"max=200"`
	GiftReaction    GiftReaction `json:"giftReaction" yaml:"giftReaction" validate:"oneof=delighted modest embarrassed unknown"`

	RecipientActions []RecipientAction `json:"recipientActions" yaml:"recipientActions" validate:"max=9,unique,dive,oneof=contacts_me shares_private_topics invites_to_meals asks_for_advice remembers_events makes_one_on_one_time notices_changes remembers_conversations shows_vulnerability"`
	RecentEpisodes   string            `json:"recentEpisodes" yaml:"recentEpisodes" validate:"max=400"`

	RelationshipGoal  RelationshipGoal `json:"relationshipGoal" yaml:"relationshipGoal" validate:"oneof=maintain deepen obligatory distance"`
	EmotionalPriority int              `json:"emotionalPriority" yaml:"emotionalPriority" validate:"min=1,max=5"`
	GiriAwareness     GiriAwareness    `json:"giriAwareness" yaml:"giriAwareness" validate:"oneof=seen_as_obligatory may_seem_romantic unknown"`
	ReturnTendency    ReturnTendency   `json:"returnTendency" yaml:"returnTendency" validate:"oneof=reliable moody never_returns unknown"`

	GaveLastYear             bool `json:"gaveLastYear" yaml:"gaveLastYear"`
	ReceivedReturn           bool `json:"receivedReturn" yaml:"receivedReturn"`
	ReturnValue              *int `json:"returnValue" yaml:"returnValue" validate:"omitempty,min=0"`
	GaveYearBefore           bool `json:"gaveYearBefore" yaml:"gaveYearBefore"`
	ReceivedReturnYearBefore bool `json:"receivedReturnYearBefore" yaml:"receivedReturnYearBefore"`

	Budget int    `json:"budget" yaml:"budget" validate:"min=100,max=100000"`
	Memo   string `json:"memo" yaml:"memo" validate:"max=200"`
}

// ReturnValueOrZero treats a missing return value as 0.
func (t *TargetProfile) ReturnValueOrZero() int {
	if t.ReturnValue == nil {
		return 0
	}
	return *t.ReturnValue
}

// HasPreference reports whether the preference tag is present.
func (t *TargetProfile) HasPreference(tag string) bool {
	for _, p := range t.Preferences {
		if p == tag {
			return true
		}
	}
	return false
}

// ReciprocatedLastYear reports a gift given last year that was returned.
func (t *TargetProfile) ReciprocatedLastYear() bool {
	return t.GaveLastYear && t.ReceivedReturn
}

// ReciprocatedYearBefore reports a gift given the year before that was returned.
func (t *TargetProfile) ReciprocatedYearBefore() bool {
	return t.GaveYearBefore && t.ReceivedReturnYearBefore
}

// TwoYearsUnreciprocated reports gifts given two years running with no return either time.
func (t *TargetProfile) TwoYearsUnreciprocated() bool {
	return t.GaveLastYear && !t.ReceivedReturn && t.GaveYearBefore && !t.ReceivedReturnYearBefore
}
