package habits

import (
	"regexp"
	"strings"
	"time"

	"github.com/habitflow/backend/internal/datekey"
)

const (
	DefaultIcon  = "✨"
	DefaultColor = "emerald"

	maxNameLength = 100
)

type Category string

const (
	CategoryHealthFitness Category = "Health & Fitness"
	CategoryMindfulness   Category = "Mindfulness"
	CategoryLearning      Category = "Learning"
	CategoryProductivity  Category = "Productivity"
	CategoryCreativity    Category = "Creativity"
	CategorySocial        Category = "Social"
	CategorySelfCare      Category = "Self-Care"
	CategoryOther         Category = "Other"
)

var Categories = []Category{
	CategoryHealthFitness,
	CategoryMindfulness,
	CategoryLearning,
	CategoryProductivity,
	CategoryCreativity,
	CategorySocial,
	CategorySelfCare,
	CategoryOther,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Weekday is a scheduling tag, Mon..Sun.
type Weekday string

var Weekdays = []Weekday{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Weekday) IsValid() bool {
	for _, known := range Weekdays {
		if d == known {
			return true
		}
	}
	return false
}

var scheduledTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Habit struct {
	ID            string      `json:"id"`
	OwnerID       int         `json:"ownerId"`
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	Icon          string      `json:"icon"`
	ScheduledDays []Weekday   `json:"scheduledDays"`
	ScheduledTime string      `json:"scheduledTime"`
	Color         string      `json:"color"`
	Streak        int         `json:"streak"`
	Completions   Completions `json:"completions"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// IsScheduledOn reports whether the habit is planned for the given day.
// Habits without scheduled days are daily.
func (h *Habit) IsScheduledOn(day datekey.DateKey) bool {
	if len(h.ScheduledDays) == 0 {
		return true
	}
	name := Weekday(day.DayName())
	for _, d := range h.ScheduledDays {
		if d == name {
			return true
		}
	}
	return false
}

// HabitInput is the client payload for a new habit.
type HabitInput struct {
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	Icon          string    `json:"icon"`
	ScheduledDays []Weekday `json:"scheduledDays"`
	ScheduledTime string    `json:"scheduledTime"`
	Color         string    `json:"color"`
}

// Validate trims the input in place and applies defaults.
func (in *HabitInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	in.Color = strings.TrimSpace(in.Color)
	in.ScheduledTime = strings.TrimSpace(in.ScheduledTime)

	if err := validateName(in.Name); err != nil {
		return err
	}
	if in.Category == "" {
		return &ValidationError{Field: "category", Reason: "required"}
	}
	if !in.Category.IsValid() {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	days, err := normalizeDays(in.ScheduledDays)
	if err != nil {
		return err
	}
	in.ScheduledDays = days
	if err := validateScheduledTime(in.ScheduledTime); err != nil {
		return err
	}

	if in.Icon == "" {
		in.Icon = DefaultIcon
	}
	if in.Color == "" {
		in.Color = DefaultColor
	}
	return nil
}

// HabitPatch is a partial update; nil fields are left untouched.
// Streak and completions are not part of it on purpose.
type HabitPatch struct {
	Name          *string    `json:"name"`
	Category      *Category  `json:"category"`
	Icon          *string    `json:"icon"`
	ScheduledDays *[]Weekday `json:"scheduledDays"`
	ScheduledTime *string    `json:"scheduledTime"`
	Color         *string    `json:"color"`
}

func (p HabitPatch) Apply(h *Habit) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateName(name); err != nil {
			return err
		}
		h.Name = name
	}
	if p.Category != nil {
		if !p.Category.IsValid() {
			return &ValidationError{Field: "category", Reason: "unknown category"}
		}
		h.Category = *p.Category
	}
	if p.Icon != nil {
		h.Icon = strings.TrimSpace(*p.Icon)
		if h.Icon == "" {
			h.Icon = DefaultIcon
		}
	}
	if p.ScheduledDays != nil {
		days, err := normalizeDays(*p.ScheduledDays)
		if err != nil {
			return err
		}
		h.ScheduledDays = days
	}
	if p.ScheduledTime != nil {
		st := strings.TrimSpace(*p.ScheduledTime)
		if err := validateScheduledTime(st); err != nil {
			return err
		}
		h.ScheduledTime = st
	}
	if p.Color != nil {
		h.Color = strings.TrimSpace(*p.Color)
		if h.Color == "" {
			h.Color = DefaultColor
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if len([]rune(name)) > maxNameLength {
		return &ValidationError{Field: "name", Reason: "too long"}
	}
	return nil
}

func validateScheduledTime(st string) error {
	if st != "" && !scheduledTimeRegex.MatchString(st) {
		return &ValidationError{Field: "scheduledTime", Reason: "expected HH:MM"}
	}
	return nil
}

// normalizeDays drops duplicates and orders days Mon..Sun.
func normalizeDays(days []Weekday) ([]Weekday, error) {
	seen := make(map[Weekday]bool, len(days))
	for _, d := range days {
		if !d.IsValid() {
			return nil, &ValidationError{Field: "scheduledDays", Reason: "unknown day " + string(d)}
		}
		seen[d] = true
	}
	normalized := make([]Weekday, 0, len(seen))
	for _, d := range Weekdays {
		if seen[d] {
			normalized = append(normalized, d)
		}
	}
	return normalized, nil
}
