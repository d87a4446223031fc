package enums

import "fmt"

// TimeWindow selects the trending window.
type TimeWindow string

const (
	TimeWindowDay  TimeWindow = "day"
	TimeWindowWeek TimeWindow = "week"
)

func (w TimeWindow) String() string {
	return string(w)
}

func (w TimeWindow) IsValid() bool {
	return w == TimeWindowDay || w == TimeWindowWeek
}

func ParseTimeWindow(value string) (TimeWindow, error) {
	w := TimeWindow(value)
	if w.IsValid() {
		return w, nil
	}
	return "", fmt.Errorf("invalid time window %q", value)
}
