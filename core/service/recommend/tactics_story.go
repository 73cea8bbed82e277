package recommend

import (
	"fmt"
	"strings"

	"tactics_server/core/domain"
)

const (
	interestHookMinLen = 5
	interestHookMaxLen = 40
	episodeHookMinLen  = 10
	episodeHookMaxLen  = 60
)

// Story narrates why the gift fits the target. Only intangible goals get a
// story; tangible goals return "".
func Story(t *domain.TargetProfile, item string) string {
	if t.BenefitType != domain.BenefitIntangible {
		return ""
	}

	name := t.Name
	hooks := interestHook(t.RecentInterests) + episodeHook(t.RecentEpisodes)
	closing := closingHint(t.GiftReaction)

	var b strings.Builder
	switch t.Relationship {
	case domain.RelationshipPartner:
		fmt.Fprintf(&b, "You chose %q because you see how hard %s works every day.%s", item, name, hooks)
		b.WriteString("\nNo special occasion is needed to say thank you, and this box carries all of it.")
		b.WriteString("\nTime spent enjoying it together will be the real present.")
	case domain.RelationshipRomanticInterest:
		fmt.Fprintf(&b, "When %s crossed your mind, %q caught your eye.%s", name, item, hooks)
		b.WriteString("\n\"They'd love this\" is something you only know because you pay attention.")
		b.WriteString("\nKeep it light but sincere, and let the gesture speak for itself.")
	case domain.RelationshipBoss:
		fmt.Fprintf(&b, "You picked %q to turn everyday gratitude into something real.%s", item, hooks)
		fmt.Fprintf(&b, "\nA small smile when %s takes a break at their desk is all you hope for.", name)
		b.WriteString("\nHand it over casually with a simple \"thank you for everything.\"")
	case domain.RelationshipFriend:
		fmt.Fprintf(&b, "You and %s never stand on ceremony, which is exactly why %q should be a small surprise.%s", name, item, hooks)
		b.WriteString("\n\"You didn't have to!\" \"Just felt like it.\" That easy warmth is what friends are for.")
	case domain.RelationshipColleague:
		fmt.Fprintf(&b, "A small thank-you to %s, who works alongside you every day: %q.%s", name, item, hooks)
		b.WriteString("\nHand it over with a \"good work\" on a busy afternoon and the team mood might lighten a little.")
	default:
		fmt.Fprintf(&b, "%q for %s. Just a small gesture, chosen while picturing their face when they open it.%s", item, name, hooks)
	}
	b.WriteString(closing)
	return b.String()
}

func interestHook(interests string) string {
	if runeLen(interests) <= interestHookMinLen {
		return ""
	}
	return fmt.Sprintf("\nHearing they have been into %q lately made you want to know them better.", truncateRunes(interests, interestHookMaxLen))
}

func episodeHook(episodes string) string {
	if runeLen(episodes) <= episodeHookMinLen {
		return ""
	}
	return fmt.Sprintf("\nThinking back on it (%s) shows you where the two of you stand.", truncateRunes(episodes, episodeHookMaxLen))
}

func closingHint(reaction domain.GiftReaction) string {
	switch reaction {
	case domain.ReactionEmbarrassed:
		return "\nTip: hand it over casually so they do not feel awkward. Mentioning that you brought some for everyone puts them at ease."
	case domain.ReactionModest:
		return "\nTip: they accept things modestly, so a light tone makes it easier to receive."
	default:
		return ""
	}
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
