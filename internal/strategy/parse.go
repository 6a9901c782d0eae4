package strategy

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/report"
)

// parseResponse decodes the model's JSON strategy. 모델이 코드펜스로
// 감싸거나 필드를 배열/객체로 돌려주는 경우까지 문자열로 강제한다.
func parseResponse(raw string) (contracts.Strategy, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return contracts.Strategy{}, fmt.Errorf("decode strategy JSON: %w", err)
	}

	strategy := contracts.Strategy{
		Overview:  coerceField(fields["overview"]),
		Action:    coerceField(fields["action"]),
		Risk:      coerceField(fields["risk"]),
		Watchlist: coerceField(fields["watchlist"]),
		Date:      report.NowKST(),
	}
	return strategy, nil
}

// stripCodeFence removes a surrounding ``` / ```json fence
func stripCodeFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	parts := strings.SplitN(raw, "```", 3)
	if len(parts) < 2 {
		return raw
	}

	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}

// coerceField flattens a JSON value into display text: 문자열은 그대로,
// 배열/객체는 줄 단위로, 없으면 "-"
func coerceField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "-"
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "-"
		}
		return s
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		lines := make([]string, 0, len(list))
		for _, item := range list {
			lines = append(lines, coerceField(item))
		}
		return strings.Join(lines, "\n")
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, obj[k]))
		}
		return strings.Join(lines, "\n")
	}

	return strings.Trim(string(raw), `"`)
}
