package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/strpool"
	"github.com/bloops-games/achievements/internal/tracker/resource"
	"github.com/bloops-games/achievements/internal/tracker/view"
	"github.com/bloops-games/achievements/internal/util"
	"github.com/enescakir/emoji"
)

const progressBarWidth = 20

type navEntry struct {
	title string
	view  View
}

// navigation is the header menu of a signed-in session.
func navigation(s model.Session) []navEntry {
	if s.IsAdmin {
		return []navEntry{
			{title: resource.TitleStatistics, view: ViewStatistics},
			{title: resource.TitleAllAchievements, view: ViewCatalog},
			{title: resource.TitleAdmin, view: ViewAdmin},
		}
	}

	return []navEntry{
		{title: resource.TitleAchievements, view: ViewAchievements},
		{title: resource.TitleStatistics, view: ViewStatistics},
		{title: resource.TitleAllAchievements, view: ViewCatalog},
	}
}

func writeHeader(buf *strings.Builder, title, subtitle string, s *model.Session, current View) {
	buf.WriteString(title)
	buf.WriteString("\n")
	if subtitle != "" {
		buf.WriteString(subtitle)
		buf.WriteString("\n")
	}

	if s == nil {
		buf.WriteString("\n")
		return
	}

	buf.WriteString(emoji.Alien.String())
	buf.WriteString(" ")
	buf.WriteString(s.Username)
	if s.IsAdmin {
		buf.WriteString(" (admin)")
	}
	buf.WriteString("\n")

	for _, e := range navigation(*s) {
		if e.view == current {
			buf.WriteString("[*] ")
		} else {
			buf.WriteString("[ ] ")
		}
		buf.WriteString(e.title)
		buf.WriteString(" ")
		buf.WriteString(e.view.Path())
		buf.WriteString("  ")
	}
	buf.WriteString(resource.TitleLogout)
	buf.WriteString("\n\n")
}

func writeError(buf *strings.Builder, msg string) {
	if msg == "" {
		return
	}

	buf.WriteString(emoji.CrossMark.String())
	buf.WriteString(" ")
	buf.WriteString(msg)
	buf.WriteString("\n")
	buf.WriteString(resource.TextRetryHint)
	buf.WriteString("\n\n")
}

func writeProgressBar(buf *strings.Builder, percent float64) {
	filled := int(percent / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	if filled < 0 {
		filled = 0
	}

	buf.WriteString("[")
	buf.WriteString(strings.Repeat("#", filled))
	buf.WriteString(strings.Repeat(".", progressBarWidth-filled))
	buf.WriteString("] ")
	buf.WriteString(formatPercent(percent, 0))
}

func formatPercent(p float64, prec int) string {
	return strconv.FormatFloat(p, 'f', prec, 64) + "%"
}

// formatUnlockedAt shortens a backend timestamp to a date, unknown layouts are shown raw.
func formatUnlockedAt(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}

// RenderRedirect is the notice shown above a view the router substituted. The root
// path always redirects and gets none.
func RenderRedirect(route Route) string {
	if !route.Redirected || route.Requested == ViewLogin {
		return ""
	}

	return fmt.Sprintf(resource.TextRedirected, route.Requested.Path(), route.View.Path()) + "\n\n"
}

func RenderLogin(errMsg string) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	writeHeader(buf, resource.TitleLogin, resource.SubtitleLogin, nil, ViewLogin)
	writeError(buf, errMsg)
	buf.WriteString(resource.TextLoginPrompt)
	buf.WriteString("\n")

	return buf.String()
}

func RenderAchievements(v *view.Achievements) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	s := v.Session()
	all, unlocked, locked := v.Counts()
	writeHeader(buf, resource.TitleAchievements, strconv.Itoa(unlocked)+"/"+strconv.Itoa(all)+" Unlocked", &s, ViewAchievements)
	writeError(buf, v.Err())

	buf.WriteString("Progress ")
	writeProgressBar(buf, v.Progress())
	buf.WriteString("\n")

	for _, f := range []struct {
		filter view.Filter
		label  string
		count  int
	}{
		{filter: view.FilterAll, label: "All", count: all},
		{filter: view.FilterUnlocked, label: "Unlocked", count: unlocked},
		{filter: view.FilterLocked, label: "Locked", count: locked},
	} {
		if f.filter == v.Filter() {
			buf.WriteString("[*] ")
		} else {
			buf.WriteString("[ ] ")
		}
		buf.WriteString(f.label)
		buf.WriteString(" (")
		buf.WriteString(strconv.Itoa(f.count))
		buf.WriteString(")  ")
	}
	buf.WriteString("\n")

	if v.Search() != "" {
		buf.WriteString("Search: ")
		buf.WriteString(v.Search())
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	filtered := v.Filtered()
	if len(filtered) == 0 {
		buf.WriteString(resource.TextNoAchievements)
		buf.WriteString("\n")
		return buf.String()
	}

	for _, a := range filtered {
		if a.Unlocked {
			buf.WriteString(emoji.Trophy.String())
		} else {
			buf.WriteString(emoji.Locked.String())
		}
		buf.WriteString(" ")
		buf.WriteString(a.Name)
		buf.WriteString(" [")
		buf.WriteString(a.ID)
		buf.WriteString("]\n    ")
		buf.WriteString(a.Description)
		buf.WriteString("\n")
	}

	return buf.String()
}

func writeCatalogEntry(buf *strings.Builder, a api.CatalogAchievement) {
	buf.WriteString(emoji.Trophy.String())
	buf.WriteString(" ")
	buf.WriteString(a.Name)
	buf.WriteString(" [")
	buf.WriteString(a.ID)
	buf.WriteString("]\n    ")
	buf.WriteString(a.Description)
	buf.WriteString("\n    ")
	buf.WriteString(strconv.Itoa(a.UnlockCount))
	buf.WriteString(" ")
	buf.WriteString(util.Plural(a.UnlockCount, "user", "users"))
	buf.WriteString(" unlocked, ")
	buf.WriteString(formatPercent(a.PopularityPercentage, -1))
	buf.WriteString("\n")
}

func RenderCatalog(v *view.Catalog, s model.Session) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	writeHeader(buf, resource.TitleAllAchievements, resource.SubtitleCatalog, &s, ViewCatalog)
	writeError(buf, v.Err())

	sum := v.Summary()
	buf.WriteString("Total Achievements: ")
	buf.WriteString(strconv.Itoa(sum.Total))
	buf.WriteString("\nUnlocked by Users: ")
	buf.WriteString(strconv.Itoa(sum.UnlockedByAny))
	buf.WriteString("\nCompletion Rate: ")
	buf.WriteString(strconv.Itoa(sum.CompletionRate))
	buf.WriteString("%\n\n")

	filtered := v.Filtered()
	if len(filtered) == 0 {
		buf.WriteString(resource.TextNoAchievements)
		buf.WriteString("\n")
		return buf.String()
	}

	for _, a := range filtered {
		writeCatalogEntry(buf, a)
	}

	return buf.String()
}

func RenderAdmin(p *view.AdminPanel, s model.Session) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	writeHeader(buf, resource.TitleAdmin, resource.SubtitleAdmin, &s, ViewAdmin)
	if msg := p.Message(); msg != "" {
		buf.WriteString(emoji.CheckMarkButton.String())
		buf.WriteString(" ")
		buf.WriteString(msg)
		buf.WriteString("\n\n")
	}
	if errMsg := p.Err(); errMsg != "" {
		buf.WriteString(emoji.CrossMark.String())
		buf.WriteString(" ")
		buf.WriteString(errMsg)
		buf.WriteString("\n\n")
	}

	buf.WriteString("Users: ")
	buf.WriteString(strconv.Itoa(len(p.AllUsers())))
	buf.WriteString("  Achievements: ")
	buf.WriteString(strconv.Itoa(len(p.AllAchievements())))
	buf.WriteString("\n\n")

	users := p.Users()
	if len(users) == 0 {
		buf.WriteString(resource.TextNoUsers)
		buf.WriteString("\n")
	}
	for _, u := range users {
		if u.Username == p.Selected() {
			buf.WriteString("> ")
		} else {
			buf.WriteString("  ")
		}
		buf.WriteString(u.Username)
		if model.IsAdminUsername(u.Username) {
			buf.WriteString(" (admin)")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	if pending := p.PendingDelete(); pending != "" {
		buf.WriteString(emoji.Bomb.String())
		buf.WriteString(" ")
		buf.WriteString(fmt.Sprintf(resource.TextDeleteConfirm, pending))
		buf.WriteString("\n\n")
	}

	if p.Selected() == "" {
		buf.WriteString(resource.TextNoUserSelected)
		buf.WriteString("\n")
		return buf.String()
	}

	buf.WriteString("Achievements of ")
	buf.WriteString(p.Selected())
	buf.WriteString(":\n")
	for _, a := range p.Achievements() {
		if p.Unlocked(a.ID) {
			buf.WriteString("[x] ")
		} else {
			buf.WriteString("[ ] ")
		}
		buf.WriteString(a.Name)
		buf.WriteString(" [")
		buf.WriteString(a.ID)
		buf.WriteString("]\n")
	}

	return buf.String()
}

func RenderStatistics(v *view.Statistics) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	s := v.Session()
	writeHeader(buf, resource.TitleStatistics, "", &s, ViewStatistics)
	writeError(buf, v.Err())

	for _, t := range v.Tabs() {
		if t == v.Tab() {
			buf.WriteString("[*] ")
		} else {
			buf.WriteString("[ ] ")
		}
		buf.WriteString(string(t))
		buf.WriteString("  ")
	}
	buf.WriteString("\n\n")

	stats := v.Global()
	if stats == nil {
		return buf.String()
	}

	o := stats.OverallStats
	buf.WriteString(emoji.SportsMedal.String())
	buf.WriteString(" Users: ")
	buf.WriteString(strconv.Itoa(o.TotalUsers))
	buf.WriteString("  Achievements: ")
	buf.WriteString(strconv.Itoa(o.TotalAchievements))
	buf.WriteString("  Unlocks: ")
	buf.WriteString(strconv.Itoa(o.TotalUnlocks))
	buf.WriteString("  Avg per user: ")
	buf.WriteString(strconv.FormatFloat(o.AverageAchievementsPerUser, 'f', -1, 64))
	buf.WriteString("  Recent unlocks: ")
	buf.WriteString(strconv.Itoa(o.RecentUnlocksCount))
	buf.WriteString("\n\n")

	switch v.Tab() {
	case view.TabAchievements:
		writePopularity(buf, stats)
	case view.TabPersonal:
		writePersonal(buf, v)
	default:
		writeRankings(buf, stats.UserRankings)
	}

	return buf.String()
}

func writeRankings(buf *strings.Builder, rankings []api.RankingEntry) {
	if len(rankings) == 0 {
		buf.WriteString(resource.TextNoUsers)
		buf.WriteString("\n")
		return
	}

	for i, r := range rankings {
		switch i {
		case 0:
			buf.WriteString(emoji.FirstPlaceMedal.String())
		case 1:
			buf.WriteString(emoji.SecondPlaceMedal.String())
		case 2:
			buf.WriteString(emoji.ThirdPlaceMedal.String())
		default:
			buf.WriteString("#")
			buf.WriteString(strconv.Itoa(i + 1))
		}
		buf.WriteString(" ")
		buf.WriteString(r.Username)
		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(r.AchievementsCount))
		buf.WriteString("/")
		buf.WriteString(strconv.Itoa(r.TotalAchievements))
		buf.WriteString(" achievements  ")
		buf.WriteString(formatPercent(r.CompletionPercentage, -1))
		buf.WriteString("\n")
	}
}

func writePopularity(buf *strings.Builder, stats *api.Statistics) {
	if stats.MostPopularAchievement != nil {
		buf.WriteString("Most popular: ")
		buf.WriteString(stats.MostPopularAchievement.Name)
		buf.WriteString("\n")
	}
	if stats.LeastPopularAchievement != nil {
		buf.WriteString("Least popular: ")
		buf.WriteString(stats.LeastPopularAchievement.Name)
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	if len(stats.AchievementPopularity) == 0 {
		buf.WriteString(resource.TextNoAchievements)
		buf.WriteString("\n")
		return
	}

	for _, a := range stats.AchievementPopularity {
		writeCatalogEntry(buf, a)
	}
}

func writePersonal(buf *strings.Builder, v *view.Statistics) {
	if !v.PersonalAvailable() {
		buf.WriteString(emoji.CardIndex.String())
		buf.WriteString(" ")
		buf.WriteString(resource.TextAdminNoPersonal)
		buf.WriteString("\n")
		return
	}

	p := v.Personal()
	if p == nil {
		return
	}

	buf.WriteString("Achievements: ")
	buf.WriteString(strconv.Itoa(p.AchievementsCount))
	buf.WriteString("/")
	buf.WriteString(strconv.Itoa(p.TotalAchievements))
	buf.WriteString("\nCompletion: ")
	buf.WriteString(formatPercent(p.CompletionPercentage, -1))
	buf.WriteString("\nRank: #")
	buf.WriteString(strconv.Itoa(p.Rank))
	buf.WriteString(" of ")
	buf.WriteString(strconv.Itoa(p.TotalUsers))
	buf.WriteString("\n\n")

	if len(p.Achievements) == 0 {
		buf.WriteString(resource.TextNoAchievements)
		buf.WriteString("\n")
		return
	}

	for _, a := range p.Achievements {
		buf.WriteString(emoji.Trophy.String())
		buf.WriteString(" ")
		buf.WriteString(a.Name)
		buf.WriteString("  Unlocked: ")
		buf.WriteString(formatUnlockedAt(a.UnlockedAt))
		buf.WriteString("\n")
	}
}
