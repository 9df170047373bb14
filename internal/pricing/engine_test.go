package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricingcli/internal/dataset"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultParams(), nil)
	require.NoError(t, err)
	return engine
}

// view builds a fully joined product view for rule tests
func view(currentPrice, minPrice, maxPrice float64) ProductView {
	return ProductView{
		Product: dataset.Product{
			ID:           "P001",
			Name:         "Test Product",
			CurrentPrice: currentPrice,
			MinPrice:     minPrice,
			MaxPrice:     maxPrice,
		},
	}
}

func withDemand(v ProductView, score, qty float64) ProductView {
	v.DemandScore = score
	v.HasDemand = true
	v.QuantityAvailable = qty
	v.HasInventory = true
	return v
}

func TestNewEngine(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		engine, err := NewEngine(DefaultParams(), nil)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("invalid params", func(t *testing.T) {
		params := DefaultParams()
		params.HighDemandRaise = 0.5 // raise multiplier must exceed 1
		engine, err := NewEngine(params, nil)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

func TestEvaluateRules(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		view          ProductView
		expectAction  Action
		expectPrice   float64
		expectChange  float64
		expectNothing bool
	}{
		{
			name:         "high demand adequate stock",
			view:         withDemand(view(100, 80, 120), 8.0, 60),
			expectAction: ActionIncrease,
			expectPrice:  105.0,
			expectChange: 5.0,
		},
		{
			name:         "high demand clamped to max price",
			view:         withDemand(view(100, 80, 102), 8.0, 60),
			expectAction: ActionIncrease,
			expectPrice:  102.0,
			expectChange: 2.0,
		},
		{
			name:         "low demand excess stock",
			view:         withDemand(view(50, 40, 80), 4.0, 150),
			expectAction: ActionDecrease,
			expectPrice:  46.0,
			expectChange: -8.0,
		},
		{
			name:         "low demand clamped to min price",
			view:         withDemand(view(50, 48, 80), 4.0, 150),
			expectAction: ActionDecrease,
			expectPrice:  48.0,
			expectChange: -4.0,
		},
		{
			name: "above competitor average",
			view: func() ProductView {
				v := withDemand(view(120, 80, 150), 6.0, 60)
				v.AvgCompetitorPrice = 100
				v.HasCompetitorAvg = true
				return v
			}(),
			expectAction: ActionDecrease,
			expectPrice:  98.0,
			expectChange: -18.33,
		},
		{
			name: "competitor undercut clamped to min price",
			view: func() ProductView {
				v := withDemand(view(120, 110, 150), 6.0, 60)
				v.AvgCompetitorPrice = 100
				v.HasCompetitorAvg = true
				return v
			}(),
			expectAction: ActionDecrease,
			expectPrice:  110.0,
			expectChange: -8.33,
		},
		{
			name: "low stock sustained demand",
			view: func() ProductView {
				v := withDemand(view(100, 80, 120), 6.5, 10)
				v.StockStatus = dataset.StockStatusLowStock
				return v
			}(),
			expectAction: ActionIncrease,
			expectPrice:  108.0,
			expectChange: 8.0,
		},
		{
			name:          "no rule matches",
			view:          withDemand(view(100, 80, 120), 6.0, 60),
			expectNothing: true,
		},
		{
			name: "no demand snapshot yields no recommendation",
			view: func() ProductView {
				v := view(120, 80, 150)
				v.QuantityAvailable = 200
				v.HasInventory = true
				v.AvgCompetitorPrice = 100
				v.HasCompetitorAvg = true
				return v
			}(),
			expectNothing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommendations := engine.Evaluate(ctx, []ProductView{tt.view})

			if tt.expectNothing {
				assert.Empty(t, recommendations)
				return
			}

			require.Len(t, recommendations, 1)
			reco := recommendations[0]
			assert.Equal(t, tt.expectAction, reco.Action)
			assert.Equal(t, tt.expectPrice, reco.RecommendedPrice)
			assert.Equal(t, tt.expectChange, reco.ChangePct)
			assert.NotEmpty(t, reco.Reason)
		})
	}
}

func TestRulePriority(t *testing.T) {
	engine := newTestEngine(t)

	// Matches both the high-demand rule and the competitor rule; the
	// high-demand rule comes first and must win.
	v := withDemand(view(120, 80, 150), 8.0, 60)
	v.AvgCompetitorPrice = 100
	v.HasCompetitorAvg = true

	recommendations := engine.Evaluate(context.Background(), []ProductView{v})
	require.Len(t, recommendations, 1)
	assert.Equal(t, ActionIncrease, recommendations[0].Action)
	assert.Equal(t, 126.0, recommendations[0].RecommendedPrice)
}

func TestRecommendationBounds(t *testing.T) {
	engine := newTestEngine(t)

	views := []ProductView{
		withDemand(view(100, 90, 101), 9.5, 500),
		withDemand(view(100, 99, 110), 1.0, 500),
		func() ProductView {
			v := withDemand(view(300, 250, 400), 6.0, 60)
			v.AvgCompetitorPrice = 100
			v.HasCompetitorAvg = true
			return v
		}(),
	}

	for _, v := range views {
		recommendations := engine.Evaluate(context.Background(), []ProductView{v})
		require.Len(t, recommendations, 1)
		reco := recommendations[0]
		assert.GreaterOrEqual(t, reco.RecommendedPrice, v.Product.MinPrice)
		assert.LessOrEqual(t, reco.RecommendedPrice, v.Product.MaxPrice)
	}
}

func TestChangePctSignMatchesAction(t *testing.T) {
	engine := newTestEngine(t)

	views := []ProductView{
		withDemand(view(100, 80, 120), 8.0, 60),
		withDemand(view(50, 40, 80), 4.0, 150),
		func() ProductView {
			v := withDemand(view(120, 80, 150), 6.0, 60)
			v.AvgCompetitorPrice = 100
			v.HasCompetitorAvg = true
			return v
		}(),
	}

	recommendations := engine.Evaluate(context.Background(), views)
	require.NotEmpty(t, recommendations)

	for _, reco := range recommendations {
		switch reco.Action {
		case ActionIncrease:
			assert.GreaterOrEqual(t, reco.ChangePct, 0.0, "product %s", reco.ProductID)
		case ActionDecrease:
			assert.LessOrEqual(t, reco.ChangePct, 0.0, "product %s", reco.ProductID)
		}
	}
}

func TestEvaluateSortsByChangePct(t *testing.T) {
	engine := newTestEngine(t)

	// Three products engineered to produce change percentages of
	// +5, -8 and +8 respectively.
	raise := withDemand(view(100, 80, 120), 8.0, 60)
	raise.Product.ID = "P-RAISE"

	cut := withDemand(view(50, 40, 80), 4.0, 150)
	cut.Product.ID = "P-CUT"

	lowStock := withDemand(view(100, 80, 120), 6.5, 10)
	lowStock.Product.ID = "P-LOW"
	lowStock.StockStatus = dataset.StockStatusLowStock

	recommendations := engine.Evaluate(context.Background(), []ProductView{raise, cut, lowStock})
	require.Len(t, recommendations, 3)

	assert.Equal(t, []float64{8.0, 5.0, -8.0}, []float64{
		recommendations[0].ChangePct,
		recommendations[1].ChangePct,
		recommendations[2].ChangePct,
	})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"already exact", 5.0, 5.0},
		{"rounds up", 5.005, 5.01},
		{"rounds down", 5.004, 5.0},
		{"negative", -8.336, -8.34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Round2(tt.in), 1e-9)
		})
	}
}
