package model

// Badge 静态徽章目录项
type Badge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	BadgeTopMentor      = "badge-top-mentor"
	BadgeSkillStreak    = "badge-skill-streak"
	BadgeHelpfulTeacher = "badge-helpful-teacher"
)

// BadgeCatalog 徽章目录
var BadgeCatalog = []Badge{
	{ID: BadgeTopMentor, Name: "Top Mentor"},
	{ID: BadgeSkillStreak, Name: "Skill Streak"},
	{ID: BadgeHelpfulTeacher, Name: "Helpful Teacher"},
}

// BadgeByID 查找徽章
func BadgeByID(id string) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
