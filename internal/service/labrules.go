package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// LabRule flags a lab result document when its JMESPath expression evaluates
// to boolean true against the result JSON.
type LabRule struct {
	Flag string
	Expr string
}

// DefaultLabRules returns the built-in ruleset for common panel values.
func DefaultLabRules() []LabRule {
	return []LabRule{
		{Flag: "wbc_high", Expr: "values.wbc > `11.0`"},
		{Flag: "wbc_low", Expr: "values.wbc < `4.0`"},
		{Flag: "hgb_low", Expr: "values.hgb < `12.0`"},
		{Flag: "glucose_high", Expr: "values.glucose > `125`"},
		{Flag: "critical", Expr: "critical == `true`"},
	}
}

// LabRuleServiceOptions groups dependencies for LabRuleService.
type LabRuleServiceOptions struct {
	// Rules defaults to DefaultLabRules when empty.
	Rules     []LabRule
	Evaluator JMESPathEvaluator
	Logger    *slog.Logger
}

// LabRuleService derives flags from lab result documents.
type LabRuleService struct {
	rules []LabRule
	jems  JMESPathEvaluator
	log   *slog.Logger
}

// NewLabRuleService constructs a LabRuleService, validating every rule expression.
func NewLabRuleService(opts LabRuleServiceOptions) (*LabRuleService, error) {
	rules := opts.Rules
	if len(rules) == 0 {
		rules = DefaultLabRules()
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, rule := range rules {
		if strings.TrimSpace(rule.Flag) == "" {
			return nil, fmt.Errorf("lab rule with expression %q has no flag", rule.Expr)
		}
		if strings.TrimSpace(rule.Expr) == "" {
			return nil, fmt.Errorf("lab rule %q has no expression", rule.Flag)
		}
		if err := jems.Validate(rule.Expr); err != nil {
			return nil, fmt.Errorf("invalid expression for lab rule %q: %w", rule.Flag, err)
		}
	}

	return &LabRuleService{rules: rules, jems: jems, log: logger}, nil
}

// Flags evaluates every rule against the result document and returns the flags
// whose expressions evaluated to true, in rule order. A rule that errors at
// evaluation time is skipped with a warning; a missing field is not a match.
func (s *LabRuleService) Flags(result json.RawMessage) ([]string, error) {
	if len(result) == 0 {
		return nil, nil
	}

	var data any
	if err := json.Unmarshal(result, &data); err != nil {
		return nil, fmt.Errorf("invalid result JSON: %w", err)
	}

	var flags []string
	for _, rule := range s.rules {
		res, err := s.jems.Evaluate(rule.Expr, data)
		if err != nil {
			s.log.Warn("lab rule evaluation failed", "flag", rule.Flag, "error", err)
			continue
		}
		if matched, ok := res.(bool); ok && matched {
			flags = append(flags, rule.Flag)
		}
	}
	return flags, nil
}
