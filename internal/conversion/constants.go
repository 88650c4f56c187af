package conversion

// RulesSchemaPath is the path (relative to project root) of the rule file schema.
const RulesSchemaPath = "configs/schemas/conversion_rules.schema.json"

// Log messages
const (
	LogMsgRuleReplaced = "Replacing existing conversion rule"
	LogMsgNoRule       = "No conversion rule registered, returning identity copy"
	LogMsgRulesLoaded  = "Loaded conversion rules from file"
)
