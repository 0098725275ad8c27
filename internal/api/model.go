package api

// Achievement is the per-user projection returned by /achievements/{username}.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Unlocked    bool   `json:"unlocked"`
}

// CatalogAchievement is the global projection with aggregate unlock counts.
type CatalogAchievement struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	ImageURL             string  `json:"image_url"`
	UnlockCount          int     `json:"unlock_count"`
	PopularityPercentage float64 `json:"popularity_percentage"`
}

type User struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type UpdateAchievementRequest struct {
	Username      string `json:"username"`
	AchievementID string `json:"achievement_id"`
	Unlocked      bool   `json:"unlocked"`
}

type UpdateAchievementResponse struct {
	Message       string `json:"message"`
	Username      string `json:"username"`
	AchievementID string `json:"achievement_id"`
	Unlocked      bool   `json:"unlocked"`
}

type DeleteUserResponse struct {
	Message     string `json:"message"`
	DeletedUser string `json:"deleted_user"`
}

type OverallStats struct {
	TotalUsers                 int     `json:"total_users"`
	TotalAchievements          int     `json:"total_achievements"`
	TotalUnlocks               int     `json:"total_unlocks"`
	AverageAchievementsPerUser float64 `json:"average_achievements_per_user"`
	RecentUnlocksCount         int     `json:"recent_unlocks_count"`
}

// RankingEntry order is the backend's, clients do not re-sort.
type RankingEntry struct {
	Username             string  `json:"username"`
	AchievementsCount    int     `json:"achievements_count"`
	TotalAchievements    int     `json:"total_achievements"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type Unlock struct {
	Username      string `json:"username"`
	AchievementID string `json:"achievement_id"`
	UnlockedAt    string `json:"unlocked_at"`
}

type Statistics struct {
	OverallStats            OverallStats         `json:"overall_stats"`
	UserRankings            []RankingEntry       `json:"user_rankings"`
	AchievementPopularity   []CatalogAchievement `json:"achievement_popularity"`
	MostPopularAchievement  *CatalogAchievement  `json:"most_popular_achievement"`
	LeastPopularAchievement *CatalogAchievement  `json:"least_popular_achievement"`
	RecentActivity          []Unlock             `json:"recent_activity"`
}

type UnlockedAchievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	UnlockedAt  string `json:"unlocked_at"`
}

type UserStatistics struct {
	Username             string                `json:"username"`
	AchievementsCount    int                   `json:"achievements_count"`
	TotalAchievements    int                   `json:"total_achievements"`
	CompletionPercentage float64               `json:"completion_percentage"`
	Rank                 int                   `json:"rank"`
	TotalUsers           int                   `json:"total_users"`
	Achievements         []UnlockedAchievement `json:"achievements"`
}

type healthResponse struct {
	Message string `json:"message"`
}

type achievementsEnvelope struct {
	Achievements []Achievement `json:"achievements"`
}

type catalogEnvelope struct {
	Achievements []CatalogAchievement `json:"achievements"`
}

type usersEnvelope struct {
	Users []User `json:"users"`
}

type loginRequest struct {
	Username string `json:"username"`
}
