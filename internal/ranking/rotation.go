package ranking

import (
	"sort"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
)

// SelectFocusSectors picks the k strongest sectors by average change.
// 2차 시장(US)에서 종목 수집 범위를 주도 섹터로 좁히는 사전 필터.
// 이미 스코어링된 종목을 거르는 후처리가 아니다.
// 섹터가 k개 미만이면 전부 선택한다.
func SelectFocusSectors(summaries []contracts.SectorSummary, k int) map[string]struct{} {
	sorted := make([]contracts.SectorSummary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgChangePct > sorted[j].AvgChangePct
	})

	if k < 0 {
		k = 0
	}
	if k > len(sorted) {
		k = len(sorted)
	}

	focus := make(map[string]struct{}, k)
	for _, s := range sorted[:k] {
		focus[s.Name] = struct{}{}
	}
	return focus
}
