package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/dayscribe/internal/client/models"
	"github.com/dmitrijs2005/dayscribe/internal/client/onboarding"
	"github.com/dmitrijs2005/dayscribe/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/dayscribe/internal/client/services"
	"github.com/dmitrijs2005/dayscribe/internal/client/suggest"
	"github.com/dmitrijs2005/dayscribe/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RegisterOnboardAndManageTasks(t *testing.T) {
	env := newTestEnv(t, nil,
		"register",
		"ann@example.com",
		"Ann",
		"Lee",
		"secret1",
		"Meditate",
		"Stretch",
		"",
		"add Buy milk",
		"add Call mom",
		"list",
		"done 2",
		"whoami",
		"exit",
	)

	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "Welcome, Ann Lee!")
	assert.Contains(t, out, "Saved 2 daily tasks.")
	assert.Contains(t, out, " 1. [ ] Call mom\n 2. [ ] Buy milk\n 3. [ ] Meditate (daily)\n 4. [ ] Stretch (daily)\n")
	assert.Contains(t, out, "Completed: Buy milk")
	assert.Contains(t, out, "Ann Lee <ann@example.com>")
	assert.Contains(t, out, "Bye!")

	require.NotNil(t, env.app.user)
	assert.Equal(t, onboarding.TargetTasks, env.app.target())

	raw, err := env.repo.Get(context.Background(), services.TasksKey(env.app.user.ID))
	require.NoError(t, err)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(raw, &tasks))
	require.Equal(t, []string{"Call mom", "Buy milk", "Meditate", "Stretch"}, models.Texts(tasks))
	require.True(t, tasks[1].Completed)
}

func TestRun_RestoresSession(t *testing.T) {
	repo := kvstore.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, services.UserKey,
		[]byte(`{"id":"u1","email":"ann@example.com","firstName":"Ann","lastName":"Lee","hasCompletedOnboarding":true}`)))
	require.NoError(t, repo.Set(ctx, services.TasksKey("u1"),
		[]byte(`[{"id":"t1","text":"Water plants","completed":true,"userId":"u1"}]`)))

	env := newTestEnvWithRepo(t, repo, nil, "l", "exit")
	env.app.Run(ctx)

	out := env.out.String()
	assert.Contains(t, out, "Welcome back, Ann Lee!")
	assert.Contains(t, out, " 1. [x] Water plants")
	assert.Contains(t, out, "dayscribe (ann@example.com)> ")
}

func TestRun_CorruptStateIsReported(t *testing.T) {
	repo := kvstore.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, services.UserKey, []byte(`{"id":`)))

	env := newTestEnvWithRepo(t, repo, nil, "exit")
	env.app.Run(ctx)

	assert.Contains(t, env.out.String(), "Saved session was unreadable")
	assert.Nil(t, env.app.user)
	assert.Empty(t, repo.Snapshot())
}

func TestRun_CorruptTasksStartEmpty(t *testing.T) {
	repo := kvstore.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, services.UserKey, []byte(`{"id":"u1","email":"a@b.co"}`)))
	require.NoError(t, repo.Set(ctx, services.TasksKey("u1"), []byte(`[{"id":"t1","text":"x","completed":false,"userId":"u2"}]`)))

	env := newTestEnvWithRepo(t, repo, nil, "list", "exit")
	env.app.Run(ctx)

	out := env.out.String()
	assert.Contains(t, out, "Saved tasks were unreadable")
	assert.Contains(t, out, "No tasks yet.")
}

func TestRun_LoginThenLogoutClearsData(t *testing.T) {
	env := newTestEnv(t, nil,
		"login",
		"bob@example.com",
		"hunter22",
		"add Call mom",
		"logout",
		"list",
		"exit",
	)
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "Logged in as Demo User")
	assert.Contains(t, out, "Logged out.")
	assert.Contains(t, out, "Please login or register first.")
	assert.Nil(t, env.app.user)
	assert.Empty(t, env.repo.Snapshot())
}

func TestRun_LoginValidation(t *testing.T) {
	env := newTestEnv(t, nil,
		"login",
		"not-an-email",
		"login",
		"bob@example.com",
		"123",
		"exit",
	)
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "Error: invalid email address")
	assert.Contains(t, out, "Error: password must be at least 6 characters")
	assert.Nil(t, env.app.user)
	assert.Empty(t, env.repo.Snapshot())
}

func TestRun_OnboardingSkipAndUndo(t *testing.T) {
	env := newTestEnv(t, nil,
		"register",
		"ann@example.com",
		"Ann",
		"Lee",
		"secret1",
		"Meditate",
		"undo",
		"skip",
		"daily",
		"exit",
	)
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "(no daily tasks yet)")
	assert.Contains(t, out, "Skipped.")
	assert.Contains(t, out, "No daily tasks.")
	require.NotNil(t, env.app.user)
	assert.False(t, env.app.user.NeedsOnboarding())
}

func TestRun_OnboardingRejectsInvalidDraft(t *testing.T) {
	long := make([]byte, models.MaxTaskTextLen+1)
	for i := range long {
		long[i] = 'x'
	}
	env := newTestEnv(t, nil,
		"register",
		"ann@example.com",
		"Ann",
		"Lee",
		"secret1",
		string(long),
		"Meditate",
		"",
		"daily",
		"exit",
	)
	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "task too long")
	assert.Contains(t, out, "Saved 1 daily task.")
	assert.Contains(t, out, " 1. [ ] Meditate (daily)")
}

func TestRun_EOFDuringOnboardingExits(t *testing.T) {
	env := newTestEnv(t, nil, "register", "ann@example.com", "Ann", "Lee", "secret1", "Meditate")
	env.app.Run(context.Background())

	require.NotNil(t, env.app.user)
	assert.True(t, env.app.user.NeedsOnboarding())
}

func TestDoneDeleteAndDaily(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.app
	ctx := context.Background()

	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)

	require.NoError(t, a.Add(ctx, []string{"Buy", "milk"}))
	require.NoError(t, a.AddDaily(ctx, []string{"Meditate"}))

	list, err := a.tasks.List(u.ID)
	require.NoError(t, err)
	milk := list[1]

	require.NoError(t, a.Done(ctx, []string{milk.ID}))
	require.NoError(t, a.Done(ctx, []string{milk.ID}))
	assert.Contains(t, env.out.String(), "Reopened: Buy milk")

	err = a.Done(ctx, []string{"9"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	err = a.Delete(ctx, []string{"no-such-id"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	err = a.Delete(ctx, nil)
	require.ErrorIs(t, err, common.ErrValidation)

	// milk is not a daily task, so it is not addressable through deldaily.
	err = a.DelDaily(ctx, []string{milk.ID})
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, a.DelDaily(ctx, []string{"1"}))
	daily, err := a.tasks.ListRecurring(u.ID)
	require.NoError(t, err)
	assert.Empty(t, daily)

	require.NoError(t, a.Delete(ctx, []string{"1"}))
	list, err = a.tasks.List(u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdd_PromptsWhenNoArgs(t *testing.T) {
	env := newTestEnv(t, nil, "  Water plants  ")
	a := env.app
	ctx := context.Background()

	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)

	require.NoError(t, a.Add(ctx, nil))
	list, err := a.tasks.List(u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Water plants"}, models.Texts(list))
}

func TestSuggest_AddsChosenAndSkipsCompleted(t *testing.T) {
	fs := &fakeSuggester{out: suggest.Output{SuggestedTasks: []string{"buy milk", "Email Sam", "Stretch"}}}
	env := newTestEnv(t, fs,
		"9am standup",
		"1pm lunch",
		"",
		"finish report",
		"7",
		"1",
		"",
	)
	a := env.app
	ctx := context.Background()

	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)
	milk, err := a.tasks.Add(ctx, u.ID, "Buy milk", false)
	require.NoError(t, err)
	_, err = a.tasks.ToggleComplete(ctx, u.ID, milk.ID)
	require.NoError(t, err)

	require.NoError(t, a.Suggest(ctx))

	require.Len(t, fs.calls, 1)
	assert.Equal(t, suggest.Input{
		Schedule:       "9am standup\n1pm lunch",
		CompletedTasks: []string{"Buy milk"},
		UserGoals:      "finish report",
	}, fs.calls[0])

	out := env.out.String()
	assert.NotContains(t, out, " buy milk")
	assert.Contains(t, out, "Pick a number between 1 and 2.")
	assert.Contains(t, out, "Added: Email Sam")
	assert.Contains(t, out, " 1. Stretch")

	list, err := a.tasks.List(u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Email Sam", "Buy milk"}, models.Texts(list))
}

func TestSuggest_Failures(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t, nil)
	env.app.user = &models.User{ID: "u1"}
	err := env.app.Suggest(ctx)
	require.ErrorIs(t, err, suggest.ErrUnavailable)
	assert.Contains(t, userMessage(err), "ANTHROPIC_API_KEY")

	fs := &fakeSuggester{err: suggest.ErrSuggestionFailed}
	env = newTestEnv(t, fs, "9am", "", "goals")
	a := env.app
	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)

	err = a.Suggest(ctx)
	require.ErrorIs(t, err, suggest.ErrSuggestionFailed)
	assert.Equal(t, "could not fetch task suggestions, please try again", userMessage(err))
}

func TestSuggest_NoNewSuggestions(t *testing.T) {
	fs := &fakeSuggester{out: suggest.Output{SuggestedTasks: []string{}}}
	env := newTestEnv(t, fs, "9am", "", "goals")
	a := env.app
	ctx := context.Background()
	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)

	require.NoError(t, a.Suggest(ctx))
	assert.Contains(t, env.out.String(), "No new suggestions.")
}

type deadlineSuggester struct {
	hadDeadline bool
}

func (d *deadlineSuggester) Suggest(ctx context.Context, in suggest.Input) (suggest.Output, error) {
	_, d.hadDeadline = ctx.Deadline()
	if err := ctx.Err(); err != nil {
		return suggest.Output{}, err
	}
	return suggest.Output{SuggestedTasks: []string{}}, nil
}

func TestSuggest_ZeroTimeoutMeansNoDeadline(t *testing.T) {
	ds := &deadlineSuggester{}
	env := newTestEnv(t, ds, "9am", "", "goals")
	a := env.app
	a.config.SuggestTimeout = 0
	ctx := context.Background()
	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)

	require.NoError(t, a.Suggest(ctx))
	assert.False(t, ds.hadDeadline)
	assert.Contains(t, env.out.String(), "No new suggestions.")
}

func TestLogout_ForgetsLoadedTasks(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.app
	ctx := context.Background()
	u, err := a.sessions.Login(ctx, "a@b.co")
	require.NoError(t, err)
	a.user = u
	a.loadTasks(ctx)
	_, err = a.tasks.Add(ctx, u.ID, "Call mom", false)
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))

	_, err = a.tasks.List(u.ID)
	require.ErrorIs(t, err, common.ErrForeignOwner)
}

func TestClose_WithoutDB(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.app.Close())
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t, nil)
	require.ErrorIs(t, env.app.Whoami(context.Background()), common.ErrNotLoggedIn)
}
