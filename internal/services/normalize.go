package services

import (
	"strings"

	"tailorbook_backend/pkg/utils"
)

// multiSelectSeparator joins the selected option labels of a multi-select
// style category into the single stored string.
const multiSelectSeparator = ", "

// CollapseMultiSelect flattens the options submitted under one multi-select
// style category into the stored value: the labels joined in submission order,
// or nil when nothing was selected. Returning nil on an empty submission is
// what clears a previously stored value on update instead of preserving it.
func CollapseMultiSelect(values []string) *string {
	selected := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			selected = append(selected, v)
		}
	}
	if len(selected) == 0 {
		return nil
	}
	joined := strings.Join(selected, multiSelectSeparator)
	return &joined
}

// NormalizeSuitCount coerces the submitted suit count to an integer >= 1.
// Malformed input falls back to 1 rather than rejecting the submission.
func NormalizeSuitCount(raw string) int {
	count := utils.ParseIntOrDefault(raw, 1)
	if count < 1 {
		return 1
	}
	return count
}

// NormalizePrice coerces a submitted price to a non-negative integer amount.
// Malformed input falls back to 0 rather than rejecting the submission.
func NormalizePrice(raw string) int64 {
	price := utils.ParseInt64OrDefault(raw, 0)
	if price < 0 {
		return 0
	}
	return price
}
