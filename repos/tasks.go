package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/devteams/devteams-server/models/message"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/uptrace/bun"
)

type TaskRepo struct {
	db *bun.DB
}

func NewTaskRepo(db *bun.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (c *TaskRepo) ListTasks(ctx context.Context) ([]message.Task, error) {
	tasks := make([]message.Task, 0)
	err := c.db.NewSelect().Model(&tasks).OrderExpr(`"task"."id" ASC`).Scan(ctx)
	return tasks, err
}

func (c *TaskRepo) GetTask(ctx context.Context, id int64) (*message.Task, error) {
	task := new(message.Task)
	err := c.db.NewSelect().Model(task).Where(`"task"."id" = ?`, id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// TasksByIds returns the tasks that exist among ids, in no particular order.
func (c *TaskRepo) TasksByIds(ctx context.Context, ids []int64) ([]message.Task, error) {
	tasks := make([]message.Task, 0)
	if len(ids) == 0 {
		return tasks, nil
	}
	err := c.db.NewSelect().Model(&tasks).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	return tasks, err
}

func (c *TaskRepo) AddTask(ctx context.Context, task *message.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	_, err := c.db.NewInsert().Model(task).Exec(ctx)
	return err
}

func (c *TaskRepo) UpdateTask(ctx context.Context, task *message.Task) error {
	res, err := c.db.NewUpdate().Model(task).Column("title", "text", "sender_id").WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask also drops the task from every completed-task list.
func (c *TaskRepo) DeleteTask(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model(new(message.CompletedTasksToTask)).Where("task_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		return deleteRow(ctx, tx, new(message.Task), id)
	})
}

func (c *TaskRepo) ListCompleted(ctx context.Context) ([]message.CompletedTasks, error) {
	lists := make([]message.CompletedTasks, 0)
	err := c.db.NewSelect().Model(&lists).
		Relation("Tasks", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr(`"task"."id" ASC`)
		}).
		OrderExpr(`"completed_tasks"."id" ASC`).
		Scan(ctx)
	return lists, err
}

func (c *TaskRepo) GetCompleted(ctx context.Context, id int64) (*message.CompletedTasks, error) {
	return getCompleted(ctx, c.db, id)
}

// AddCompleted inserts the list together with its task links.
func (c *TaskRepo) AddCompleted(ctx context.Context, list *message.CompletedTasks, taskIds []int64) (*message.CompletedTasks, error) {
	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now().UTC()
	}

	var created *message.CompletedTasks
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(list).Exec(ctx); err != nil {
			return err
		}
		if err := replaceCompletedTasks(ctx, tx, list.Id, taskIds); err != nil {
			return err
		}

		var err error
		created, err = getCompleted(ctx, tx, list.Id)
		return err
	})
	return created, err
}

// UpdateCompleted writes columns of list and, when taskIds is not nil,
// replaces its task links.
func (c *TaskRepo) UpdateCompleted(ctx context.Context, list *message.CompletedTasks, columns []string, taskIds []int64) (*message.CompletedTasks, error) {
	var updated *message.CompletedTasks
	err := c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*message.CompletedTasks)(nil)).Where("id = ?", list.Id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		if len(columns) > 0 {
			if _, err := tx.NewUpdate().Model(list).Column(columns...).WherePK().Exec(ctx); err != nil {
				return err
			}
		}

		if taskIds != nil {
			if err := replaceCompletedTasks(ctx, tx, list.Id, taskIds); err != nil {
				return err
			}
		}

		updated, err = getCompleted(ctx, tx, list.Id)
		return err
	})
	return updated, err
}

func (c *TaskRepo) DeleteCompleted(ctx context.Context, id int64) error {
	return c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model(new(message.CompletedTasksToTask)).Where("completed_tasks_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		return deleteRow(ctx, tx, new(message.CompletedTasks), id)
	})
}

func getCompleted(ctx context.Context, db bun.IDB, id int64) (*message.CompletedTasks, error) {
	list := new(message.CompletedTasks)
	err := db.NewSelect().Model(list).
		Relation("Tasks", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr(`"task"."id" ASC`)
		}).
		Where(`"completed_tasks"."id" = ?`, id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if list.Tasks == nil {
		list.Tasks = make([]message.Task, 0)
	}
	return list, nil
}

func replaceCompletedTasks(ctx context.Context, db bun.IDB, listId int64, taskIds []int64) error {
	if _, err := db.NewDelete().Model(new(message.CompletedTasksToTask)).Where("completed_tasks_id = ?", listId).Exec(ctx); err != nil {
		return err
	}

	seen := make([]int64, 0, len(taskIds))
	rows := make([]message.CompletedTasksToTask, 0, len(taskIds))
	for _, id := range taskIds {
		if utils.IsInList(id, &seen) > -1 {
			continue
		}
		seen = append(seen, id)
		rows = append(rows, message.CompletedTasksToTask{CompletedTasksId: listId, TaskId: id})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := db.NewInsert().Model(&rows).Exec(ctx)
	return err
}
