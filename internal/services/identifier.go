package services

import (
	"fmt"
	"strconv"
	"strings"

	"tailorbook_backend/pkg/utils"
)

// customerIDPadWidth is the minimum digit width of the numeric part of a
// customer ID. Numbers past 999 simply grow wider (AB999 -> AB1000).
const customerIDPadWidth = 3

// NextCustomerID mints the next customer ID from the highest one issued so
// far. lastID is empty when no customer exists yet, in which case numbering
// starts at 1.
//
// A stored ID that does not parse as prefix+number restarts the sequence at 1
// instead of failing: record creation must never be blocked by a corrupted
// identifier. The anomaly is logged because restarting can mint a duplicate
// when several corrupted rows exist; the unique constraint on customer_id is
// what actually keeps duplicates out of the store.
func NextCustomerID(prefix, lastID string) string {
	number := 1
	if lastID != "" {
		parsed, err := parseCustomerIDNumber(prefix, lastID)
		if err != nil {
			utils.LogWarn("Stored customer ID does not match expected format, restarting sequence",
				map[string]interface{}{"last_id": lastID, "prefix": prefix})
		} else {
			number = parsed + 1
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, customerIDPadWidth, number)
}

func parseCustomerIDNumber(prefix, id string) (int, error) {
	if !strings.HasPrefix(id, prefix) {
		return 0, fmt.Errorf("customer ID %q lacks prefix %q", id, prefix)
	}
	number, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil {
		return 0, fmt.Errorf("customer ID %q has non-numeric suffix: %w", id, err)
	}
	if number < 0 {
		return 0, fmt.Errorf("customer ID %q has negative number", id)
	}
	return number, nil
}
