package repos_test

import (
	"context"
	"testing"

	"github.com/devteams/devteams-server/models/message"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/testutil"
	"github.com/stretchr/testify/require"
)

func TestCompletedTasksLinks(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tasks := repos.NewTaskRepo(db)

	ids := make([]int64, 0)
	for _, title := range []string{"Plan", "Build", "Ship"} {
		task := &message.Task{Title: title}
		require.NoError(t, tasks.AddTask(ctx, task))
		ids = append(ids, task.Id)
	}

	list, err := tasks.AddCompleted(ctx, &message.CompletedTasks{Title: "Sprint 1"}, []int64{ids[0], ids[1], ids[0]})
	require.NoError(t, err)
	require.Len(t, list.Tasks, 2)

	list.Checked = true
	updated, err := tasks.UpdateCompleted(ctx, list, []string{"checked"}, nil)
	require.NoError(t, err)
	require.True(t, updated.Checked)
	require.Len(t, updated.Tasks, 2)

	updated, err = tasks.UpdateCompleted(ctx, updated, nil, []int64{ids[2]})
	require.NoError(t, err)
	require.Len(t, updated.Tasks, 1)
	require.Equal(t, "Ship", updated.Tasks[0].Title)

	require.NoError(t, tasks.DeleteTask(ctx, ids[2]))
	updated, err = tasks.GetCompleted(ctx, list.Id)
	require.NoError(t, err)
	require.Empty(t, updated.Tasks)

	require.NoError(t, tasks.DeleteCompleted(ctx, list.Id))
	_, err = tasks.GetCompleted(ctx, list.Id)
	require.ErrorIs(t, err, repos.ErrNotFound)
}
