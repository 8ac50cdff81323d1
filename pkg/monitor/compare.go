package monitor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/plexmo/plexmo/pkg/models"
)

var errNotComparable = errors.New("values are not comparable")

// compare evaluates "actual op expected". Numeric values are coerced to
// float64 so that JSON-decoded numbers compare against Go integers.
func compare(op models.Operator, actual, expected any) (bool, error) {
	actualNum, actualIsNum := toFloat(actual)
	expectedNum, expectedIsNum := toFloat(expected)

	if actualIsNum && expectedIsNum {
		return compareFloats(op, actualNum, expectedNum), nil
	}

	switch op {
	case models.OpEqual:
		return reflect.DeepEqual(actual, expected), nil
	case models.OpNotEqual:
		return !reflect.DeepEqual(actual, expected), nil
	}

	actualStr, actualIsStr := actual.(string)
	expectedStr, expectedIsStr := expected.(string)

	if actualIsStr && expectedIsStr {
		return compareStrings(op, actualStr, expectedStr), nil
	}

	return false, fmt.Errorf("%w: %T %s %T", errNotComparable, actual, op, expected)
}

func compareFloats(op models.Operator, a, b float64) bool {
	switch op {
	case models.OpEqual:
		return a == b
	case models.OpNotEqual:
		return a != b
	case models.OpLess:
		return a < b
	case models.OpLessEqual:
		return a <= b
	case models.OpGreater:
		return a > b
	case models.OpGreaterEqual:
		return a >= b
	}

	return false
}

func compareStrings(op models.Operator, a, b string) bool {
	switch op {
	case models.OpLess:
		return a < b
	case models.OpLessEqual:
		return a <= b
	case models.OpGreater:
		return a > b
	case models.OpGreaterEqual:
		return a >= b
	}

	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	}

	return 0, false
}
