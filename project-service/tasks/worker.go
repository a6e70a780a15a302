package tasks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/devteams/devteams-server/models/system"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Worker struct {
	Jobs     *repos.JobRepo
	Profiles *repos.ProfileRepo
	Users    *repos.UserRepo
	Mailer   Mailer
	AppName  string
}

func NewWorker(jobs *repos.JobRepo, profiles *repos.ProfileRepo, users *repos.UserRepo, mailer Mailer) *Worker {
	return &Worker{
		Jobs:     jobs,
		Profiles: profiles,
		Users:    users,
		Mailer:   mailer,
		AppName:  "DevTeams",
	}
}

// Handle runs job and records the outcome on its system.Job row.
func (w *Worker) Handle(ctx context.Context, job Job) error {
	var (
		detail map[string]string
		err    error
	)

	switch job.Kind {
	case KindCreateProfile:
		detail, err = w.createProfile(ctx, job.UserId)
	default:
		err = fmt.Errorf("unknown task kind %q", job.Kind)
	}

	status := system.JobDone
	if err != nil {
		status = system.JobFailed
		detail = map[string]string{"error": err.Error()}
		log.Error().Err(err).Str("job", job.Id).Str("kind", job.Kind).Msg("Task failed")
	} else {
		log.Debug().Str("job", job.Id).Str("kind", job.Kind).Msg("Task done")
	}

	// The outcome is recorded even when ctx was cancelled mid-task.
	if uerr := w.Jobs.UpdateJob(context.WithoutCancel(ctx), job.Id, detail, status); uerr != nil {
		log.Error().Err(uerr).Str("job", job.Id).Msg("Could not record task status")
	}

	return err
}

func (w *Worker) createProfile(ctx context.Context, userId int64) (map[string]string, error) {
	profile, err := w.Profiles.CreateForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	detail := map[string]string{"profile": strconv.FormatInt(profile.Id, 10)}

	if w.Mailer == nil {
		return detail, nil
	}

	user, err := w.Users.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	vars := user.ToMap()
	vars["{{app}}"] = w.AppName

	if err := w.Mailer.Send(user.Email, utils.Format(welcomeSubject, vars), utils.Format(welcomeBody, vars)); err != nil {
		log.Warn().Err(err).Int64("user", userId).Msg("Could not send welcome mail")
		detail["mail"] = "failed"
	} else {
		detail["mail"] = "sent"
	}

	return detail, nil
}

// Dispatcher records a job and hands it to the queue.
type Dispatcher struct {
	Queue Queue
	Jobs  *repos.JobRepo
}

func NewDispatcher(queue Queue, jobs *repos.JobRepo) *Dispatcher {
	return &Dispatcher{Queue: queue, Jobs: jobs}
}

func (d *Dispatcher) CreateProfile(ctx context.Context, userId int64) (string, error) {
	return d.dispatch(ctx, "users", Job{
		Id:     uuid.NewString(),
		Kind:   KindCreateProfile,
		UserId: userId,
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, service string, job Job) (string, error) {
	now := time.Now().UTC()
	err := d.Jobs.AddJob(ctx, system.Job{
		Id:        job.Id,
		Service:   service,
		Item:      job.Kind,
		Status:    system.JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", err
	}

	if err := d.Queue.Enqueue(ctx, job); err != nil {
		_ = d.Jobs.UpdateJob(ctx, job.Id, map[string]string{"error": err.Error()}, system.JobFailed)
		return "", err
	}

	return job.Id, nil
}
