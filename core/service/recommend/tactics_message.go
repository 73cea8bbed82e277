package recommend

import "tactics_server/core/domain"

var messages = map[domain.Relationship]string{
	domain.RelationshipPartner:          "Thank you for everything, always.\nHaving you in my life is my greatest happiness.\nWith all my gratitude.",
	domain.RelationshipRomanticInterest: "A small thank-you for everything.\nI hope you like it.",
	domain.RelationshipBoss:             "Thank you for all your guidance.\nPlease accept this small token of my appreciation.",
	domain.RelationshipColleague:        "Great work as always!\nA little thanks for everything. Let's keep at it together!",
	domain.RelationshipFriend:           "Thanks for always being there!\nJust a little something, hope you enjoy it.",
	domain.RelationshipOther:            "Just a small token. Please enjoy.",
}

// Message returns the fixed card message for the relationship type.
func Message(rel domain.Relationship) string {
	if m, ok := messages[rel]; ok {
		return m
	}
	return messages[domain.RelationshipOther]
}
