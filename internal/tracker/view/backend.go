package view

import (
	"context"

	"github.com/bloops-games/achievements/internal/api"
)

// Backend is the part of the API client the view controllers talk to.
type Backend interface {
	Login(ctx context.Context, username string) (api.LoginResponse, error)
	UserAchievements(ctx context.Context, username string) ([]api.Achievement, error)
	AllAchievements(ctx context.Context) ([]api.CatalogAchievement, error)
	Users(ctx context.Context) ([]api.User, error)
	UpdateAchievement(ctx context.Context, username, achievementID string, unlocked bool) (api.UpdateAchievementResponse, error)
	DeleteUser(ctx context.Context, username string) (api.DeleteUserResponse, error)
	Statistics(ctx context.Context) (api.Statistics, error)
	UserStatistics(ctx context.Context, username string) (api.UserStatistics, error)
}

var _ Backend = (*api.Client)(nil)
