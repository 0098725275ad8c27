package view

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bloops-games/achievements/internal/api"
	"github.com/bloops-games/achievements/internal/database/session/model"
	"github.com/bloops-games/achievements/internal/tracker/resource"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestPanel(t *testing.T, session model.Session, onSelfDeleted func(string)) (*AdminPanel, *fakeBackend, string) {
	t.Helper()

	user := gofakeit.Username()
	backend := newFakeBackend()
	backend.catalog = testCatalog()
	backend.users = []api.User{{Username: model.AdminUsername}, {Username: user}, {Username: "carol"}}
	backend.unlocks[user] = map[string]bool{"did_cr": true}

	p := NewAdminPanel(backend, session, onSelfDeleted)
	require.NoError(t, p.Load(context.Background()))
	return p, backend, user
}

func TestAdminPanelLoad(t *testing.T) {
	t.Parallel()

	p, backend, _ := newTestPanel(t, model.New("admin"), nil)
	require.Len(t, p.AllUsers(), 3)
	require.Len(t, p.AllAchievements(), 3)
	require.Equal(t, 1, backend.count("Users"))
	require.Equal(t, 1, backend.count("AllAchievements"))
	require.Empty(t, p.Selected())
}

func TestAdminPanelLoadError(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	backend.errs["Users"] = &api.Error{Op: api.MsgUsers}

	p := NewAdminPanel(backend, model.New("admin"), nil)
	require.Error(t, p.Load(context.Background()))
	require.Equal(t, api.MsgUsers, p.Err())
}

func TestAdminPanelSelectUser(t *testing.T) {
	t.Parallel()

	p, _, user := newTestPanel(t, model.New("admin"), nil)
	ctx := context.Background()

	require.NoError(t, p.SelectUser(ctx, user))
	require.Equal(t, user, p.Selected())
	want := map[string]bool{"did_cr": true, "found_bug": false, "wrote_code": false}
	if diff := cmp.Diff(want, p.UnlockMap()); diff != "" {
		t.Errorf("unlock map mismatch (-want +got):\n%s", diff)
	}

	err := p.SelectUser(ctx, "Admin")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, resource.TextCannotManageAdmin, p.Err())

	require.Error(t, p.SelectUser(ctx, ""))
	require.Equal(t, resource.TextSelectUserFirst, p.Err())
}

func TestAdminPanelToggle(t *testing.T) {
	t.Parallel()

	p, backend, user := newTestPanel(t, model.New("admin"), nil)
	ctx := context.Background()

	err := p.Toggle(ctx, "did_cr")
	require.Error(t, err)
	require.Equal(t, resource.TextSelectUserFirst, p.Err())
	require.Zero(t, backend.count("UpdateAchievement"))

	require.NoError(t, p.SelectUser(ctx, user))
	before := p.UnlockMap()

	require.NoError(t, p.Toggle(ctx, "found_bug"))
	require.Equal(t, []api.UpdateAchievementRequest{{Username: user, AchievementID: "found_bug", Unlocked: true}}, backend.updates)
	require.Equal(t, fmt.Sprintf(resource.TextAchievementToggled, resource.TextUnlocked, user), p.Message())

	after := p.UnlockMap()
	require.True(t, after["found_bug"])
	delete(before, "found_bug")
	delete(after, "found_bug")
	require.Equal(t, before, after)

	require.NoError(t, p.Toggle(ctx, "did_cr"))
	require.False(t, p.Unlocked("did_cr"))
	require.Equal(t, fmt.Sprintf(resource.TextAchievementToggled, resource.TextLocked, user), p.Message())
}

func TestAdminPanelToggleFailureKeepsMap(t *testing.T) {
	t.Parallel()

	p, backend, user := newTestPanel(t, model.New("admin"), nil)
	ctx := context.Background()

	require.NoError(t, p.SelectUser(ctx, user))
	backend.errs["UpdateAchievement"] = backendErr(api.MsgUpdateAchievement, "Achievement not found")

	require.Error(t, p.Toggle(ctx, "found_bug"))
	require.Equal(t, "Achievement not found", p.Err())
	require.False(t, p.Unlocked("found_bug"))
	require.Empty(t, p.Message())
}

func TestAdminPanelDeleteAdminRejected(t *testing.T) {
	t.Parallel()

	p, backend, _ := newTestPanel(t, model.New("admin"), nil)
	calls := backend.totalCalls()

	require.Error(t, p.RequestDelete("ADMIN"))
	require.Equal(t, resource.TextCannotDeleteAdmin, p.Err())
	require.Empty(t, p.PendingDelete())

	require.Error(t, p.ConfirmDelete(context.Background()))
	require.Equal(t, calls, backend.totalCalls())
}

func TestAdminPanelDeleteUser(t *testing.T) {
	t.Parallel()

	var selfDeleted []string
	p, backend, user := newTestPanel(t, model.New("admin"), func(u string) { selfDeleted = append(selfDeleted, u) })
	ctx := context.Background()

	require.NoError(t, p.RequestDelete(user))
	require.Equal(t, user, p.PendingDelete())
	require.Empty(t, p.Err())

	p.CancelDelete()
	require.Empty(t, p.PendingDelete())

	require.NoError(t, p.RequestDelete(user))
	require.NoError(t, p.ConfirmDelete(ctx))
	require.Equal(t, []string{user}, backend.deleted)
	require.Equal(t, fmt.Sprintf(resource.TextUserDeleted, user), p.Message())
	require.Len(t, p.AllUsers(), 2)
	require.Equal(t, 2, backend.count("Users"))
	require.Empty(t, selfDeleted)
}

func TestAdminPanelDeleteFailure(t *testing.T) {
	t.Parallel()

	p, backend, user := newTestPanel(t, model.New("admin"), nil)
	backend.errs["DeleteUser"] = backendErr(api.MsgDeleteUser, "Cannot delete the last user in the system")

	require.NoError(t, p.RequestDelete(user))
	require.Error(t, p.ConfirmDelete(context.Background()))
	require.Equal(t, "Cannot delete the last user in the system", p.Err())
	require.Equal(t, user, p.PendingDelete())
}

func TestAdminPanelSelfDelete(t *testing.T) {
	t.Parallel()

	var selfDeleted []string
	p, _, _ := newTestPanel(t, model.New("carol"), func(u string) { selfDeleted = append(selfDeleted, u) })

	require.NoError(t, p.RequestDelete("carol"))
	require.Equal(t, resource.TextSelfDeleteWarning, p.Err())

	require.NoError(t, p.ConfirmDelete(context.Background()))
	require.Equal(t, []string{"carol"}, selfDeleted)
}

func TestAdminPanelSearch(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPanel(t, model.New("admin"), nil)
	p.SetSearch("CAR")
	users := p.Users()
	require.Contains(t, users, api.User{Username: "carol"})
	require.NotContains(t, users, api.User{Username: model.AdminUsername})
	require.Empty(t, p.Achievements())

	p.SetSearch("bug")
	require.Len(t, p.Achievements(), 1)
}

func TestAdminPanelReselect(t *testing.T) {
	t.Parallel()

	p, backend, user := newTestPanel(t, model.New("admin"), nil)
	backend.unlocks["carol"] = map[string]bool{"wrote_code": true}
	ctx := context.Background()

	require.NoError(t, p.SelectUser(ctx, user))
	require.NoError(t, p.SelectUser(ctx, "carol"))
	require.Equal(t, "carol", p.Selected())
	require.Equal(t, map[string]bool{"did_cr": false, "found_bug": false, "wrote_code": true}, p.UnlockMap())

	require.NoError(t, p.Toggle(ctx, "did_cr"))
	require.Equal(t, "carol", backend.updates[0].Username)
	require.False(t, backend.unlocks[user]["found_bug"])
}
