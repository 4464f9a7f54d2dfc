package habits

import (
	"encoding/json"
	"sort"

	"github.com/habitflow/backend/internal/datekey"
)

// Completions is the sparse per-day completion record of a habit.
// A missing day means not completed.
type Completions map[datekey.DateKey]bool

func (c Completions) Done(day datekey.DateKey) bool {
	return c[day]
}

// Toggle flips the day and returns the new value.
func (c Completions) Toggle(day datekey.DateKey) bool {
	c[day] = !c[day]
	return c[day]
}

// CompletedDays returns all days marked true, ascending.
func (c Completions) CompletedDays() []datekey.DateKey {
	days := make([]datekey.DateKey, 0, len(c))
	for k, v := range c {
		if v {
			days = append(days, k)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func (c Completions) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[datekey.DateKey]bool(c))
}

// UnmarshalJSON is lenient: values that are not booleans count as false
// and keys that are not canonical dates are dropped.
func (c *Completions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := make(Completions, len(raw))
	for k, v := range raw {
		day, err := datekey.Parse(k)
		if err != nil {
			continue
		}
		var done bool
		if err := json.Unmarshal(v, &done); err != nil {
			done = false
		}
		decoded[day] = done
	}
	*c = decoded
	return nil
}
