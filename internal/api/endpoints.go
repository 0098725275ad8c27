package api

import (
	"context"
	"net/http"
	"net/url"
)

// Ping checks that the backend answers on its root.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var resp healthResponse
	if err := c.do(ctx, MsgHealth, http.MethodGet, "/", nil, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// Login creates the user on first use, the backend treats it as an upsert.
func (c *Client) Login(ctx context.Context, username string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, MsgLogin, http.MethodPost, "/login", loginRequest{Username: username}, &resp)
	return resp, err
}

func (c *Client) UserAchievements(ctx context.Context, username string) ([]Achievement, error) {
	var resp achievementsEnvelope
	if err := c.do(ctx, MsgUserAchievements, http.MethodGet, "/achievements/"+url.PathEscape(username), nil, &resp); err != nil {
		return nil, err
	}

	return resp.Achievements, nil
}

func (c *Client) AllAchievements(ctx context.Context) ([]CatalogAchievement, error) {
	var resp catalogEnvelope
	if err := c.do(ctx, MsgCatalog, http.MethodGet, "/achievements", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Achievements, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var resp usersEnvelope
	if err := c.do(ctx, MsgUsers, http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Users, nil
}

func (c *Client) UpdateAchievement(ctx context.Context, username, achievementID string, unlocked bool) (UpdateAchievementResponse, error) {
	var resp UpdateAchievementResponse
	req := UpdateAchievementRequest{Username: username, AchievementID: achievementID, Unlocked: unlocked}
	err := c.do(ctx, MsgUpdateAchievement, http.MethodPost, "/admin/update-achievement", req, &resp)
	return resp, err
}

func (c *Client) DeleteUser(ctx context.Context, username string) (DeleteUserResponse, error) {
	var resp DeleteUserResponse
	err := c.do(ctx, MsgDeleteUser, http.MethodDelete, "/admin/delete-user/"+url.PathEscape(username), nil, &resp)
	return resp, err
}

func (c *Client) Statistics(ctx context.Context) (Statistics, error) {
	var resp Statistics
	err := c.do(ctx, MsgStatistics, http.MethodGet, "/statistics", nil, &resp)
	return resp, err
}

func (c *Client) UserStatistics(ctx context.Context, username string) (UserStatistics, error) {
	var resp UserStatistics
	err := c.do(ctx, MsgUserStatistics, http.MethodGet, "/statistics/"+url.PathEscape(username), nil, &resp)
	return resp, err
}
