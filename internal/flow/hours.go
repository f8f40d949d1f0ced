package flow

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// weekdayFields are both the valid and the mandatory field set of an hours
// section. An empty value means closed all day.
var weekdayFields = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// weekdayKeys maps time.Weekday onto the configuration field names.
var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// timeframePattern matches HHMM-HHMM with HH in 00-23 and MM in 00-59.
var timeframePattern = regexp.MustCompile(`^([01]\d|2[0-3])([0-5]\d)-([01]\d|2[0-3])([0-5]\d)$`)

// interval is a boundary-inclusive time-of-day window in minutes since
// midnight.
type interval struct {
	from int
	to   int
}

// HoursGate evaluates a weekly open/closed schedule. It performs no timezone
// conversion; callers must supply a now already in the configured IVR
// location.
type HoursGate struct {
	name string
	days map[string]*interval
}

// NewHoursGate parses a named hours section. Every weekday key must be
// present; any non-empty value must match HHMM-HHMM or construction fails
// with *ivr.InvalidFieldError naming the offending day.
func NewHoursGate(name, sectionName string, fields config.Fields) (*HoursGate, error) {
	if err := checkValidFields(sectionName, fields, weekdayFields); err != nil {
		return nil, err
	}
	if err := checkMandatoryFields(sectionName, fields, weekdayFields); err != nil {
		return nil, err
	}

	gate := &HoursGate{
		name: name,
		days: make(map[string]*interval, len(weekdayFields)),
	}

	for _, day := range weekdayFields {
		value := strings.ReplaceAll(fields[day], " ", "")
		if value == "" {
			gate.days[day] = nil
			continue
		}

		m := timeframePattern.FindStringSubmatch(value)
		if m == nil {
			return nil, &ivr.InvalidFieldError{
				Section: sectionName,
				Field:   day,
				Reason:  "timeframe must be in the format HHMM-HHMM",
			}
		}

		gate.days[day] = &interval{
			from: minutes(m[1], m[2]),
			to:   minutes(m[3], m[4]),
		}
	}

	return gate, nil
}

// Name returns the gate's logical name (the hours_ suffix).
func (g *HoursGate) Name() string { return g.name }

// IsOpen reports whether now falls inside the day's configured window.
// Both boundaries are inclusive; a day without a window is closed all day.
func (g *HoursGate) IsOpen(now time.Time) bool {
	window := g.days[weekdayKeys[now.Weekday()]]
	if window == nil {
		return false
	}

	m := now.Hour()*60 + now.Minute()
	return m >= window.from && m <= window.to
}

func minutes(hh, mm string) int {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}
