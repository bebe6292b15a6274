package schemas

import (
	"fmt"
	"strings"
	"time"

	"tracker/src/utils"
)

// Date represents a calendar day in YYYY-MM-DD format
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: utils.TruncateDay(t)}
}

// ToTime returns the underlying time.Time value
func (d Date) ToTime() time.Time {
	return d.Time
}

// UnmarshalJSON accepts YYYY-MM-DD. An empty string or null leaves the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "" || str == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(utils.ShortDashDateLayout, str)
	if err != nil {
		return fmt.Errorf("invalid date format, expected YYYY-MM-DD: %v", err)
	}

	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`"%s"`, d.Format(utils.ShortDashDateLayout))), nil
}
