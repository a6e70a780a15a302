package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devteams/devteams-server/models/employee"
	"github.com/devteams/devteams-server/models/system"
	"github.com/devteams/devteams-server/project-service/controllers"
	"github.com/devteams/devteams-server/project-service/serializers"
	"github.com/devteams/devteams-server/project-service/tasks"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/testutil"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app   *fiber.App
	queue *tasks.InlineQueue
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	validate := utils.NewValidator()

	teamRepo := repos.NewTeamRepo(db)
	employeeRepo := repos.NewEmployeeRepo(db)
	userRepo := repos.NewUserRepo(db)
	profileRepo := repos.NewProfileRepo(db)
	roleRepo := repos.NewStaffRoleRepo(db)
	taskRepo := repos.NewTaskRepo(db)
	jobRepo := repos.NewJobRepo(db)

	worker := tasks.NewWorker(jobRepo, profileRepo, userRepo, nil)
	queue := tasks.NewInlineQueue(worker)

	app := fiber.New()
	r := utils.GetDefaultRouter(app)

	controllers.RegisterTeamsController(r, controllers.TeamsController{
		Repo:       teamRepo,
		Serializer: serializers.NewTeamSerializer(validate, teamRepo, employeeRepo),
	})
	controllers.RegisterEmployeesController(r, controllers.EmployeesController{
		Repo:     employeeRepo,
		Validate: validate,
	})
	controllers.RegisterUsersController(r, controllers.UsersController{
		Repo:        userRepo,
		ProfileRepo: profileRepo,
		Serializer:  serializers.NewUserSerializer(validate, userRepo, roleRepo),
		Dispatcher:  tasks.NewDispatcher(queue, jobRepo),
	})
	controllers.RegisterStaffRolesController(r, controllers.StaffRolesController{
		Repo:     roleRepo,
		Validate: validate,
	})
	controllers.RegisterTasksController(r, controllers.TasksController{
		Repo:       taskRepo,
		Serializer: serializers.NewTaskSerializer(validate, userRepo, taskRepo),
	})
	controllers.RegisterJobsController(r, controllers.JobsController{Repo: jobRepo})

	return &testApp{app: app, queue: queue}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	res, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}

	return res.StatusCode
}

func (a *testApp) developer(t *testing.T, name string) employee.Developer {
	t.Helper()
	d := employee.Developer{}
	status := a.do(t, http.MethodPost, "/developers", fiber.Map{"first_name": name, "last_name": "Dev"}, &d)
	require.Equal(t, http.StatusCreated, status)
	return d
}

func (a *testApp) manager(t *testing.T, name string) employee.ProjectManager {
	t.Helper()
	m := employee.ProjectManager{}
	status := a.do(t, http.MethodPost, "/project-managers", fiber.Map{"first_name": name, "last_name": "Pm"}, &m)
	require.Equal(t, http.StatusCreated, status)
	return m
}

type errorBody struct {
	Errors []utils.ErrorResponse `json:"errors"`
}

func TestTeamLifecycle(t *testing.T) {
	a := newTestApp(t)

	d1 := a.developer(t, "Ada")
	d2 := a.developer(t, "Bob")
	d3 := a.developer(t, "Cy")
	d4 := a.developer(t, "Dee")
	pm := a.manager(t, "Pat")

	team := serializers.TeamView{}
	status := a.do(t, http.MethodPost, "/teams/create", fiber.Map{
		"team_name":       "Platform",
		"team_lead":       d1.Id,
		"project_manager": pm.Id,
		"developers":      []int64{d2.Id, d3.Id},
	}, &team)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Platform", team.TeamName)
	require.Equal(t, d1.Id, team.TeamLead.Id)
	require.Equal(t, pm.Id, team.ProjectManager.Id)
	require.Len(t, team.Developers, 2)

	lead := employee.Developer{}
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, fmt.Sprintf("/developers/%d", d1.Id), nil, &lead))
	require.Equal(t, team.Id, *lead.LeadTeamId)

	status = a.do(t, http.MethodPatch, fmt.Sprintf("/teams/%d/update", team.Id), fiber.Map{
		"team_lead":  d2.Id,
		"developers": []int64{d4.Id},
	}, &team)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, d2.Id, team.TeamLead.Id)
	require.Len(t, team.Developers, 1)
	require.Equal(t, d4.Id, team.Developers[0].Id)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, fmt.Sprintf("/developers/%d", d1.Id), nil, &lead))
	require.Nil(t, lead.LeadTeamId)

	status = a.do(t, http.MethodPut, fmt.Sprintf("/teams/%d/update", team.Id), fiber.Map{"team_name": "Core"}, &team)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Core", team.TeamName)
	require.Equal(t, d2.Id, team.TeamLead.Id)

	teams := make([]serializers.TeamView, 0)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/teams", nil, &teams))
	require.Len(t, teams, 1)

	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, fmt.Sprintf("/teams/%d/delete", team.Id), nil, nil))
	require.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, fmt.Sprintf("/teams/%d", team.Id), nil, nil))
}

func TestTeamValidation(t *testing.T) {
	a := newTestApp(t)

	d1 := a.developer(t, "Ada")
	pm := a.manager(t, "Pat")

	team := serializers.TeamView{}
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/teams/create", fiber.Map{
		"team_name":       "Platform",
		"team_lead":       d1.Id,
		"project_manager": pm.Id,
	}, &team))
	require.Empty(t, team.Developers)

	body := errorBody{}
	status := a.do(t, http.MethodPost, "/teams/create", fiber.Map{
		"team_name":  "Platform",
		"team_lead":  d1.Id,
		"developers": []int64{999},
	}, &body)
	require.Equal(t, http.StatusBadRequest, status)

	failed := make(map[string]string)
	for _, e := range body.Errors {
		failed[e.FailedField] = e.Tag
	}
	require.Equal(t, serializers.TagUnique, failed["team_name"])
	require.Equal(t, serializers.TagRequired, failed["project_manager"])
	require.Equal(t, serializers.TagNotFound, failed["developers"])

	status = a.do(t, http.MethodPut, fmt.Sprintf("/teams/%d/update", team.Id), fiber.Map{"team_lead": d1.Id}, nil)
	require.Equal(t, http.StatusBadRequest, status)

	require.Equal(t, http.StatusNotFound, a.do(t, http.MethodPatch, "/teams/999/update", fiber.Map{}, nil))
	require.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/teams/abc", nil, nil))
}

func TestUserCreationQueuesProfile(t *testing.T) {
	a := newTestApp(t)

	created := struct {
		serializers.UserView
		Job      string `json:"job"`
		Password string `json:"password"`
	}{}
	status := a.do(t, http.MethodPost, "/users/create", fiber.Map{
		"username": "ada",
		"email":    "ada@example.com",
		"password": "correct horse",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.Job)
	require.Empty(t, created.Password)

	a.queue.Wait()

	profile := struct {
		User int64 `json:"user"`
	}{}
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, fmt.Sprintf("/users/%d/profile", created.Id), nil, &profile))
	require.Equal(t, created.Id, profile.User)

	job := system.Job{}
	require.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/jobs/"+created.Job, nil, &job))
	require.Equal(t, system.JobDone, job.Status)

	require.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/users/create", fiber.Map{
		"username": "ada",
		"email":    "other@example.com",
		"password": "correct horse",
	}, nil))

	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, fmt.Sprintf("/users/%d/delete", created.Id), nil, nil))
	require.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, fmt.Sprintf("/users/%d/profile", created.Id), nil, nil))
}

func TestTasksEndpoints(t *testing.T) {
	a := newTestApp(t)

	task := struct {
		Id    int64  `json:"pk"`
		Title string `json:"title"`
	}{}
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/tasks", fiber.Map{"title": "Plan", "text": "write it down"}, &task))
	require.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/tasks", fiber.Map{"text": "untitled"}, nil))

	list := struct {
		Id    int64 `json:"pk"`
		Tasks []struct {
			Id int64 `json:"pk"`
		} `json:"tasks"`
	}{}
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/completed-tasks", fiber.Map{
		"title": "Sprint",
		"tasks": []int64{task.Id},
	}, &list))
	require.Len(t, list.Tasks, 1)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPatch, fmt.Sprintf("/completed-tasks/%d", list.Id), fiber.Map{"tasks": []int64{}}, &list))
	require.Empty(t, list.Tasks)

	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, fmt.Sprintf("/tasks/%d", task.Id), nil, nil))
}

func TestStaffRolesEndpoints(t *testing.T) {
	a := newTestApp(t)

	body := errorBody{}
	require.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/staff-roles", fiber.Map{}, &body))
	require.Len(t, body.Errors, 1)
	require.Equal(t, "name", body.Errors[0].FailedField)
	require.Equal(t, "required", body.Errors[0].Tag)

	role := struct {
		Id          int64    `json:"pk"`
		Permissions []string `json:"permissions"`
	}{}
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/staff-roles", fiber.Map{"name": "admin"}, &role))
	require.Empty(t, role.Permissions)

	body = errorBody{}
	require.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/staff-roles", fiber.Map{"name": "admin"}, &body))
	require.Equal(t, serializers.TagUnique, body.Errors[0].Tag)

	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, fmt.Sprintf("/staff-roles/%d", role.Id), nil, nil))
}

func TestTaskBodyTagsChecked(t *testing.T) {
	a := newTestApp(t)

	long := make([]byte, 251)
	for i := range long {
		long[i] = 'x'
	}

	body := errorBody{}
	require.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/tasks", fiber.Map{"title": string(long)}, &body))
	require.Equal(t, "title", body.Errors[0].FailedField)
	require.Equal(t, "max", body.Errors[0].Tag)

	body = errorBody{}
	require.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/completed-tasks", fiber.Map{"title": "Sprint", "tasks": []int64{0}}, &body))
	require.Equal(t, "gt", body.Errors[0].Tag)
}
