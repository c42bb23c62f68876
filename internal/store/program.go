package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/wellness/internal/model"
)

// ProgramDays is the length of the program.
const ProgramDays = 7

var fieldKeyRegex = regexp.MustCompile(`^program_day_(\d+)_(.+)$`)

// Program stores per-day answers of the 7-day program. All days live in one
// list under KeyProgramProgress; each answer is also mirrored to its own
// per-field key.
type Program struct {
	s *Store
}

// FieldKey returns the per-field storage key, e.g. "program_day_3_fear_main".
func FieldKey(day int, field string) string {
	return ProgramFieldPrefix + strconv.Itoa(day) + "_" + field
}

// SaveField merges one answer into the day's record, creating it if needed.
// It is user-intentional data entry: storage failures are returned.
func (p *Program) SaveField(ctx context.Context, day int, field string, v model.ResponseValue) (model.ProgramDayProgress, error) {
	if err := checkDay(day); err != nil {
		return model.ProgramDayProgress{}, err
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return model.ProgramDayProgress{}, fmt.Errorf("%w: field key is required", ErrInvalidRecord)
	}

	now := p.s.now().UTC()
	saved, err := p.modifyDay(ctx, day, func(d *model.ProgramDayProgress) {
		d.Responses[field] = v
		d.LastAccessedAt = now
	})
	if err != nil {
		return model.ProgramDayProgress{}, err
	}

	if err := p.mirrorField(ctx, day, field, v); err != nil {
		return model.ProgramDayProgress{}, err
	}
	return saved, nil
}

// mirrorField writes one answer to its per-field key: text raw, lists as JSON.
func (p *Program) mirrorField(ctx context.Context, day int, field string, v model.ResponseValue) error {
	raw := v.Text
	if v.IsList {
		var err error
		if raw, err = encode(v); err != nil {
			return err
		}
	}
	return p.s.Set(ctx, FieldKey(day, field), raw)
}

// MarkComplete stamps the day's completedAt, creating the record if needed.
func (p *Program) MarkComplete(ctx context.Context, day int) (model.ProgramDayProgress, error) {
	if err := checkDay(day); err != nil {
		return model.ProgramDayProgress{}, err
	}
	now := p.s.now().UTC()
	return p.modifyDay(ctx, day, func(d *model.ProgramDayProgress) {
		d.CompletedAt = &now
		d.LastAccessedAt = now
	})
}

// Progress returns every stored day sorted by day. When the aggregate list has
// never been written, or cannot be decoded, it is rebuilt from the per-field keys.
func (p *Program) Progress(ctx context.Context) ([]model.ProgramDayProgress, error) {
	raw, ok, err := p.s.Get(ctx, KeyProgramProgress)
	if err != nil {
		return nil, err
	}
	days, err := p.loadDays(ctx, raw, ok)
	if err != nil {
		return nil, err
	}
	sortDays(days)
	return days, nil
}

// Day returns one day's record. A day with no answers yet has empty responses.
func (p *Program) Day(ctx context.Context, day int) (model.ProgramDayProgress, error) {
	if err := checkDay(day); err != nil {
		return model.ProgramDayProgress{}, err
	}
	days, err := p.Progress(ctx)
	if err != nil {
		return model.ProgramDayProgress{}, err
	}
	for _, d := range days {
		if d.DayID == day {
			return d, nil
		}
	}
	return model.ProgramDayProgress{DayID: day, Responses: map[string]model.ResponseValue{}}, nil
}

func (p *Program) modifyDay(ctx context.Context, day int, fn func(*model.ProgramDayProgress)) (model.ProgramDayProgress, error) {
	var out model.ProgramDayProgress
	err := p.s.Update(ctx, KeyProgramProgress, func(raw string, ok bool) (string, error) {
		days, err := p.loadDays(ctx, raw, ok)
		if err != nil {
			return "", err
		}

		idx := -1
		for i := range days {
			if days[i].DayID == day {
				idx = i
				break
			}
		}
		if idx < 0 {
			days = append(days, model.ProgramDayProgress{DayID: day})
			idx = len(days) - 1
		}
		if days[idx].Responses == nil {
			days[idx].Responses = map[string]model.ResponseValue{}
		}
		fn(&days[idx])
		out = days[idx]

		sortDays(days)
		return encode(days)
	})
	return out, err
}

// loadDays decodes the aggregate list. An absent or malformed aggregate is
// rebuilt from the per-field keys, which mirror every saved answer; completion
// stamps are lost in that case.
func (p *Program) loadDays(ctx context.Context, raw string, ok bool) ([]model.ProgramDayProgress, error) {
	if ok {
		days, err := parseList[model.ProgramDayProgress](raw)
		if err == nil {
			return days, nil
		}
		p.s.log.Warn("malformed program progress, rebuilding from field keys",
			zap.String("key", KeyProgramProgress), zap.Error(err))
	}
	return p.fromFieldKeys(ctx)
}

// fromFieldKeys rebuilds day records from "program_day_<day>_<field>" keys.
// Values that parse as a JSON array are lists; anything else is taken as the
// raw string, since plain text answers are stored unquoted.
func (p *Program) fromFieldKeys(ctx context.Context) ([]model.ProgramDayProgress, error) {
	keys, err := p.s.Keys(ctx, ProgramFieldPrefix)
	if err != nil {
		return nil, err
	}

	now := p.s.now().UTC()
	byDay := map[int]*model.ProgramDayProgress{}
	for _, key := range keys {
		m := fieldKeyRegex.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		raw, ok, err := p.s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok || raw == "" {
			continue
		}

		d, exists := byDay[day]
		if !exists {
			d = &model.ProgramDayProgress{
				DayID:          day,
				Responses:      map[string]model.ResponseValue{},
				LastAccessedAt: now,
			}
			byDay[day] = d
		}
		d.Responses[m[2]] = parseFieldValue(raw)
	}

	days := make([]model.ProgramDayProgress, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sortDays(days)
	return days, nil
}

func parseFieldValue(raw string) model.ResponseValue {
	var items []string
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return model.List(items...)
		}
	}
	return model.Text(raw)
}

type fieldAnswer struct {
	day   int
	field string
	value model.ResponseValue
}

// mergeDays folds imported days into stored ones. Stored answers win; a
// completion stamp from either side is kept. Days outside the program are
// skipped. Added answers are mirrored to their per-field keys.
func (p *Program) mergeDays(ctx context.Context, imported []model.ProgramDayProgress) (changed, skipped int, err error) {
	var added []fieldAnswer
	err = p.s.Update(ctx, KeyProgramProgress, func(raw string, ok bool) (string, error) {
		days, err := p.loadDays(ctx, raw, ok)
		if err != nil {
			return "", err
		}

		index := map[int]int{}
		for i, d := range days {
			index[d.DayID] = i
		}
		changed, skipped, added = 0, 0, nil
		for _, in := range imported {
			if checkDay(in.DayID) != nil {
				skipped++
				continue
			}
			i, exists := index[in.DayID]
			if !exists {
				days = append(days, model.ProgramDayProgress{DayID: in.DayID})
				i = len(days) - 1
				index[in.DayID] = i
			}
			d := &days[i]
			if d.Responses == nil {
				d.Responses = map[string]model.ResponseValue{}
			}
			touched := !exists
			for k, v := range in.Responses {
				if _, has := d.Responses[k]; !has {
					d.Responses[k] = v
					added = append(added, fieldAnswer{day: in.DayID, field: k, value: v})
					touched = true
				}
			}
			if d.CompletedAt == nil && in.CompletedAt != nil {
				d.CompletedAt = in.CompletedAt
				touched = true
			}
			if in.LastAccessedAt.After(d.LastAccessedAt) {
				d.LastAccessedAt = in.LastAccessedAt
			}
			if touched {
				changed++
			}
		}
		sortDays(days)
		return encode(days)
	})
	if err != nil {
		return 0, 0, err
	}

	for _, a := range added {
		if err := p.mirrorField(ctx, a.day, a.field, a.value); err != nil {
			return changed, skipped, err
		}
	}
	return changed, skipped, nil
}

func checkDay(day int) error {
	if day < 1 || day > ProgramDays {
		return fmt.Errorf("%w: %d (valid: 1..%d)", ErrInvalidDay, day, ProgramDays)
	}
	return nil
}

func sortDays(days []model.ProgramDayProgress) {
	sort.Slice(days, func(i, j int) bool { return days[i].DayID < days[j].DayID })
}
