// Package recommend builds the human-facing part of an analysis: gift,
// story, message, follow-up questions, risk warnings and ROI prediction.
package recommend

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"tactics_server/core/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// CatalogEntry is one purchasable gift.
type CatalogEntry struct {
	Preference string `yaml:"preference"`
	Item       string `yaml:"item"`
	Price      int    `yaml:"price"`
	Reason     string `yaml:"reason"`
}

// CatalogTier groups entries for budgets at or above MinBudget.
type CatalogTier struct {
	Name      string         `yaml:"name"`
	MinBudget int            `yaml:"minBudget"`
	Entries   []CatalogEntry `yaml:"entries"`
	Default   CatalogEntry   `yaml:"default"`
}

// Catalog is the budget tier × preference lookup table.
type Catalog struct {
	SurpriseTag    string        `yaml:"surpriseTag"`
	SurpriseSuffix string        `yaml:"surpriseSuffix"`
	Tiers          []CatalogTier `yaml:"tiers"`
}

// ParseCatalog decodes and checks a YAML catalog. Tiers are sorted by
// descending MinBudget; one tier must start at 0 so every budget resolves.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode gift catalog: %w", err)
	}
	if len(c.Tiers) == 0 {
		return nil, fmt.Errorf("gift catalog has no tiers")
	}

	sort.SliceStable(c.Tiers, func(i, j int) bool {
		return c.Tiers[i].MinBudget > c.Tiers[j].MinBudget
	})
	if c.Tiers[len(c.Tiers)-1].MinBudget > 0 {
		return nil, fmt.Errorf("gift catalog has no tier for budgets below %d", c.Tiers[len(c.Tiers)-1].MinBudget)
	}
	for _, tier := range c.Tiers {
		if tier.Default.Item == "" {
			return nil, fmt.Errorf("gift catalog tier %q has no default item", tier.Name)
		}
		entries := make([]CatalogEntry, 0, len(tier.Entries)+1)
		entries = append(entries, tier.Entries...)
		for _, e := range append(entries, tier.Default) {
			if e.Price <= 0 {
				return nil, fmt.Errorf("gift catalog tier %q item %q has no price", tier.Name, e.Item)
			}
		}
	}
	return &c, nil
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog, parsed once.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(embeddedCatalog)
	})
	return defaultCatalog, defaultCatalogErr
}

// MustDefaultCatalog panics if the embedded catalog is broken.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Tier returns the tier a budget falls into.
func (c *Catalog) Tier(budget int) CatalogTier {
	for _, tier := range c.Tiers {
		if budget >= tier.MinBudget {
			return tier
		}
	}
	return c.Tiers[len(c.Tiers)-1]
}

// Pick selects the gift for a budget and preference set. Price never exceeds
// the budget. The story is filled in separately.
func (c *Catalog) Pick(budget int, t *domain.TargetProfile) domain.GiftSuggestion {
	tier := c.Tier(budget)

	chosen := tier.Default
	for _, e := range tier.Entries {
		if t.HasPreference(e.Preference) {
			chosen = e
			break
		}
	}

	gift := domain.GiftSuggestion{
		Item:   chosen.Item,
		Price:  min(budget, chosen.Price),
		Reason: chosen.Reason,
	}
	if c.SurpriseTag != "" && t.HasPreference(c.SurpriseTag) {
		gift.Reason += c.SurpriseSuffix
	}
	return gift
}
