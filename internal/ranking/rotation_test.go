package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
)

func TestSelectFocusSectors_TopK(t *testing.T) {
	summaries := []contracts.SectorSummary{
		{Name: "기술", AvgChangePct: 1.2},
		{Name: "금융", AvgChangePct: -0.5},
		{Name: "에너지", AvgChangePct: 2.8},
		{Name: "헬스케어", AvgChangePct: 0.3},
		{Name: "산업재", AvgChangePct: 1.9},
		{Name: "소재", AvgChangePct: -1.1},
		{Name: "유틸리티", AvgChangePct: 0.9},
	}

	focus := SelectFocusSectors(summaries, 5)

	assert.Len(t, focus, 5)
	assert.Contains(t, focus, "에너지")
	assert.Contains(t, focus, "산업재")
	assert.Contains(t, focus, "기술")
	assert.Contains(t, focus, "유틸리티")
	assert.Contains(t, focus, "헬스케어")
	assert.NotContains(t, focus, "금융")
	assert.NotContains(t, focus, "소재")
}

func TestSelectFocusSectors_FewerThanK(t *testing.T) {
	summaries := []contracts.SectorSummary{
		{Name: "기술", AvgChangePct: 1.0},
		{Name: "금융", AvgChangePct: -2.0},
	}

	focus := SelectFocusSectors(summaries, 5)
	assert.Len(t, focus, 2)
}

func TestSelectFocusSectors_DoesNotMutateInput(t *testing.T) {
	summaries := []contracts.SectorSummary{
		{Name: "A", AvgChangePct: 1.0},
		{Name: "B", AvgChangePct: 3.0},
		{Name: "C", AvgChangePct: 2.0},
	}

	SelectFocusSectors(summaries, 2)

	assert.Equal(t, "A", summaries[0].Name)
	assert.Equal(t, "B", summaries[1].Name)
	assert.Equal(t, "C", summaries[2].Name)
}

func TestSelectFocusSectors_Empty(t *testing.T) {
	assert.Empty(t, SelectFocusSectors(nil, 5))
	assert.Empty(t, SelectFocusSectors([]contracts.SectorSummary{{Name: "A"}}, 0))
}
