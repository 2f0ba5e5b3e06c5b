package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
	"github.com/lshdainty/porest-hr-front-sub002/internal/fixtures"
	"github.com/lshdainty/porest-hr-front-sub002/internal/pkg/validator"
)

// Catalog is the calendar type list and the hour settings that go with it.
//
//	types:
//	  - id: DAYOFF
//	    name: 연차
//	    kind: vacation
//	    color: "#9e5fff"
//	    is_all_day: true
//	visible_hours: {from: 7, to: 22}
//	working_hours:
//	  monday: {from: 9, to: 18}
type Catalog struct {
	Types         []calendar.EventType          `yaml:"types"`
	VisibleHours  calendar.HourRange            `yaml:"visible_hours"`
	WorkingHours  map[string]calendar.HourRange `yaml:"working_hours"`
	VacationHours map[string]float64            `yaml:"vacation_hours"`
}

func DefaultCatalog() Catalog {
	wh := make(map[string]calendar.HourRange)
	for day, r := range calendar.DefaultWorkingHours() {
		wh[weekdayKey(day)] = r
	}
	return Catalog{
		Types:         fixtures.GetDefaultCalendarTypes(),
		VisibleHours:  calendar.DefaultVisibleHours,
		WorkingHours:  wh,
		VacationHours: fixtures.GetDefaultVacationHours(),
	}
}

// LoadCatalog reads a YAML catalog. Sections missing from the file keep
// their defaults.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read calendar catalog: %w", err)
	}

	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Catalog{}, fmt.Errorf("parse calendar catalog %s: %w", path, err)
	}

	cat := DefaultCatalog()
	if len(file.Types) > 0 {
		cat.Types = file.Types
	}
	if file.VisibleHours != (calendar.HourRange{}) {
		cat.VisibleHours = file.VisibleHours
	}
	for day, r := range file.WorkingHours {
		if wd, err := ParseWeekday(day); err == nil {
			day = weekdayKey(wd)
		}
		cat.WorkingHours[day] = r
	}
	for id, h := range file.VacationHours {
		cat.VacationHours[id] = h
	}

	if err := cat.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("calendar catalog %s: %w", path, err)
	}
	return cat, nil
}

func (c Catalog) Validate() error {
	var errs validator.ValidationErrors
	seen := make(map[string]bool)

	for i, t := range c.Types {
		field := fmt.Sprintf("types[%d]", i)
		if validator.IsEmpty(t.ID) {
			errs = append(errs, validator.ValidationError{Field: field + ".id", Message: "id is required"})
		} else if seen[t.ID] {
			errs = append(errs, validator.ValidationError{Field: field + ".id", Message: "duplicate id " + t.ID})
		}
		seen[t.ID] = true
		if !validator.IsInSlice(string(t.Kind), calendar.KindValues) {
			errs = append(errs, validator.ValidationError{Field: field + ".kind", Message: "kind must be vacation, schedule or holiday"})
		}
		if !validator.IsValidHexColor(t.Color) {
			errs = append(errs, validator.ValidationError{Field: field + ".color", Message: "color must be #rgb or #rrggbb"})
		}
	}

	if !c.VisibleHours.Valid() {
		errs = append(errs, validator.ValidationError{Field: "visible_hours", Message: "from must be before to, within 0-24"})
	}
	for day, r := range c.WorkingHours {
		if _, err := ParseWeekday(day); err != nil {
			errs = append(errs, validator.ValidationError{Field: "working_hours." + day, Message: "unknown weekday"})
			continue
		}
		if !validator.IsValidHour(r.From, 24) || !validator.IsValidHour(r.To, 24) || r.From > r.To {
			errs = append(errs, validator.ValidationError{Field: "working_hours." + day, Message: "invalid hour range"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Type looks up a calendar type by id.
func (c Catalog) Type(id string) (calendar.EventType, bool) {
	for _, t := range c.Types {
		if t.ID == id {
			return t, true
		}
	}
	return calendar.EventType{}, false
}

func (c Catalog) TypeIDs() []string {
	ids := make([]string, 0, len(c.Types))
	for _, t := range c.Types {
		ids = append(ids, t.ID)
	}
	return ids
}

// Working converts the weekday-name map. Unknown names are skipped.
func (c Catalog) Working() calendar.WorkingHours {
	out := make(calendar.WorkingHours, len(c.WorkingHours))
	for day, r := range c.WorkingHours {
		if wd, err := ParseWeekday(day); err == nil {
			out[wd] = r
		}
	}
	return out
}

func weekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}
