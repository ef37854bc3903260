package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

func TestResumeDecisionMarshal(t *testing.T) {
	t.Parallel()

	t.Run("accept", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(domain.AcceptDecision())
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"accept"}`, string(raw))
	})

	t.Run("edit preserves double args nesting", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(domain.EditDecision(map[string]any{"qty": 5}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"edit","args":{"args":{"qty":5}}}`, string(raw))
	})

	t.Run("edit with nil args marshals empty mapping", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(domain.EditDecision(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"edit","args":{"args":{}}}`, string(raw))
	})

	t.Run("response", func(t *testing.T) {
		t.Parallel()

		raw, err := json.Marshal(domain.ResponseDecision("the product is discontinued"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"response","args":"the product is discontinued"}`, string(raw))
	})

	t.Run("unknown type fails", func(t *testing.T) {
		t.Parallel()

		_, err := json.Marshal(domain.ResumeDecision{Type: "reject"})
		require.Error(t, err)
	})
}

func TestParseResumeDecision(t *testing.T) {
	t.Parallel()

	t.Run("accept", func(t *testing.T) {
		t.Parallel()

		d, err := domain.ParseResumeDecision([]byte(`{"type":"accept"}`))
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionAccept, d.Type)
	})

	t.Run("edit", func(t *testing.T) {
		t.Parallel()

		d, err := domain.ParseResumeDecision([]byte(`{"type":"edit","args":{"args":{"sku":"X","qty":5}}}`))
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionEdit, d.Type)
		assert.Equal(t, map[string]any{"sku": "X", "qty": float64(5)}, d.Args)
	})

	t.Run("edit without nested args fails", func(t *testing.T) {
		t.Parallel()

		_, err := domain.ParseResumeDecision([]byte(`{"type":"edit","args":{"sku":"X"}}`))
		require.ErrorIs(t, err, domain.ErrInvalidDecision)
	})

	t.Run("edit with malformed json fails", func(t *testing.T) {
		t.Parallel()

		_, err := domain.ParseResumeDecision([]byte(`{"type":"edit","args":{"args":{`))
		require.ErrorIs(t, err, domain.ErrInvalidDecision)
	})

	t.Run("response", func(t *testing.T) {
		t.Parallel()

		d, err := domain.ParseResumeDecision([]byte(`{"type":"response","args":"out of stock"}`))
		require.NoError(t, err)
		assert.Equal(t, domain.DecisionResponse, d.Type)
		assert.Equal(t, "out of stock", d.Text)
	})

	t.Run("response with object args fails", func(t *testing.T) {
		t.Parallel()

		_, err := domain.ParseResumeDecision([]byte(`{"type":"response","args":{"text":"no"}}`))
		require.ErrorIs(t, err, domain.ErrInvalidDecision)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		t.Parallel()

		_, err := domain.ParseResumeDecision([]byte(`{"type":"retry"}`))
		require.ErrorIs(t, err, domain.ErrInvalidDecision)
	})

	t.Run("round trip edit", func(t *testing.T) {
		t.Parallel()

		orig := domain.EditDecision(map[string]any{"qty": float64(5)})
		raw, err := json.Marshal(orig)
		require.NoError(t, err)

		parsed, err := domain.ParseResumeDecision(raw)
		require.NoError(t, err)
		assert.Equal(t, orig, *parsed)
	})
}
