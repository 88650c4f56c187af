// Package conversion translates asset properties between game universes.
// Rules are registered per (source universe, target universe, item category)
// and applied to a deep copy, so a conversion never mutates the caller's
// asset and a missing rule degrades to the identity conversion.
package conversion

import (
	"sync"

	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/logger"
)

type ruleKey struct {
	from     string
	to       string
	category domain.ItemCategory
}

// PostProcessFunc runs after a rule has been applied, before the result is
// returned. Games hook model remapping or balancing tweaks here.
type PostProcessFunc func(props *domain.AssetProperties, from, to string)

// Engine holds the registered conversion rules.
type Engine struct {
	mu          sync.RWMutex
	rules       map[ruleKey]domain.ConversionRule
	postProcess PostProcessFunc
}

// NewEngine creates an engine preloaded with the stock fantasy-to-scifi
// weapon rule.
func NewEngine() *Engine {
	e := &Engine{
		rules: make(map[ruleKey]domain.ConversionRule),
	}
	for _, rule := range defaultRules() {
		e.RegisterRule(rule)
	}
	return e
}

// NewEmptyEngine creates an engine with no rules registered.
func NewEmptyEngine() *Engine {
	return &Engine{
		rules: make(map[ruleKey]domain.ConversionRule),
	}
}

// RegisterRule adds a rule, replacing any rule already registered for the
// same (from, to, category) key.
func (e *Engine) RegisterRule(rule domain.ConversionRule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := ruleKey{from: rule.FromGameType, to: rule.ToGameType, category: rule.ItemCategory}
	if _, exists := e.rules[key]; exists {
		logger.Debug(LogMsgRuleReplaced,
			"from", rule.FromGameType, "to", rule.ToGameType, "category", rule.ItemCategory)
	}
	e.rules[key] = rule
}

// SetPostProcess installs the hook run after every rule application.
func (e *Engine) SetPostProcess(fn PostProcessFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.postProcess = fn
}

// RuleCount reports how many rules are registered.
func (e *Engine) RuleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rules)
}

// HasRule reports whether a rule exists for the given key.
func (e *Engine) HasRule(from, to string, category domain.ItemCategory) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.rules[ruleKey{from: from, to: to, category: category}]
	return ok
}

// ConvertAsset translates properties from one game universe to another.
// Without a matching rule the input is returned as an unchanged copy; the
// post-process hook still runs so games can apply universe-wide fixups.
func (e *Engine) ConvertAsset(props domain.AssetProperties, from, to string) domain.AssetProperties {
	out := props.Clone()

	e.mu.RLock()
	rule, found := e.rules[ruleKey{from: from, to: to, category: props.Category}]
	postProcess := e.postProcess
	e.mu.RUnlock()

	if found {
		applyRule(&out, rule)
	} else {
		logger.Debug(LogMsgNoRule, "from", from, "to", to, "category", props.Category)
	}

	if postProcess != nil {
		postProcess(&out, from, to)
	}
	return out
}

func applyRule(props *domain.AssetProperties, rule domain.ConversionRule) {
	for key, rate := range rule.NumericConversionRates {
		if value, ok := props.NumericProperties[key]; ok {
			props.NumericProperties[key] = value * rate
		}
	}

	// Mappings match string property values, not keys, so any property
	// holding "Fire" converts no matter what the game called the field.
	for key, value := range props.StringProperties {
		if mapped, ok := rule.PropertyMappings[value]; ok {
			props.StringProperties[key] = mapped
		}
	}

	if color, ok := rule.ColorMappings[domain.ColorSlotPrimary]; ok {
		props.PrimaryColor = color
	}
	if color, ok := rule.ColorMappings[domain.ColorSlotSecondary]; ok {
		props.SecondaryColor = color
	}
}
