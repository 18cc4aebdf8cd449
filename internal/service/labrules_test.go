package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabRuleService_DefaultRules(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{})

	require.NoError(t, err)
	assert.Len(t, service.rules, len(DefaultLabRules()))
}

func TestNewLabRuleService_InvalidExpression(t *testing.T) {
	t.Parallel()

	_, err := NewLabRuleService(LabRuleServiceOptions{
		Rules: []LabRule{{Flag: "broken", Expr: "values.["}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expression for lab rule")
}

func TestNewLabRuleService_MissingFlag(t *testing.T) {
	t.Parallel()

	_, err := NewLabRuleService(LabRuleServiceOptions{
		Rules: []LabRule{{Expr: "values.wbc > `11.0`"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no flag")
}

func TestLabRuleService_Flags_Matches(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{})
	require.NoError(t, err)

	flags, err := service.Flags(json.RawMessage(`{"values":{"wbc":14.2,"hgb":10.1},"critical":true}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"wbc_high", "hgb_low", "critical"}, flags)
}

func TestLabRuleService_Flags_NoMatches(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{})
	require.NoError(t, err)

	flags, err := service.Flags(json.RawMessage(`{"values":{"wbc":7.0,"hgb":14.5,"glucose":92}}`))

	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestLabRuleService_Flags_MissingFieldsNotMatched(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{})
	require.NoError(t, err)

	flags, err := service.Flags(json.RawMessage(`{"note":"qualitative result"}`))

	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestLabRuleService_Flags_EmptyResult(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{})
	require.NoError(t, err)

	flags, err := service.Flags(nil)

	require.NoError(t, err)
	assert.Nil(t, flags)
}

func TestLabRuleService_Flags_InvalidJSON(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{})
	require.NoError(t, err)

	_, err = service.Flags(json.RawMessage(`{`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid result JSON")
}

// failingEvaluator errors on every evaluation to exercise the skip path.
type failingEvaluator struct{}

func (failingEvaluator) Validate(string) error { return nil }

func (failingEvaluator) Evaluate(string, any) (any, error) {
	return nil, errors.New("boom")
}

func TestLabRuleService_Flags_EvaluationErrorSkipsRule(t *testing.T) {
	t.Parallel()

	service, err := NewLabRuleService(LabRuleServiceOptions{
		Rules:     []LabRule{{Flag: "flaky", Expr: "values.x"}},
		Evaluator: failingEvaluator{},
	})
	require.NoError(t, err)

	flags, err := service.Flags(json.RawMessage(`{"values":{"x":1}}`))

	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestJMESPathLibEvaluator_Validate(t *testing.T) {
	t.Parallel()

	eval := jmespathLibEvaluator{}
	assert.NoError(t, eval.Validate(""))
	assert.NoError(t, eval.Validate("values.wbc > `11.0`"))
	assert.Error(t, eval.Validate("values.["))
}
