package serializers

import (
	"context"
	"errors"
	"strconv"
	"time"

	models "github.com/devteams/devteams-server/models/userdata"
	"github.com/devteams/devteams-server/repos"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/go-playground/validator/v10"
)

type UserInput struct {
	Username  *string `json:"username" validate:"omitempty,min=1,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=128"`
	StaffRole *int64  `json:"staff_role" validate:"omitempty,gt=0"`
}

type UserLookup interface {
	UsernameTaken(ctx context.Context, username string, excludeId int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeId int64) (bool, error)
}

type RoleLookup interface {
	GetRole(ctx context.Context, id int64) (*models.StaffRole, error)
}

type UserSerializer struct {
	Validate *validator.Validate
	Users    UserLookup
	Roles    RoleLookup
}

func NewUserSerializer(validate *validator.Validate, users *repos.UserRepo, roles *repos.StaffRoleRepo) *UserSerializer {
	return &UserSerializer{
		Validate: validate,
		Users:    users,
		Roles:    roles,
	}
}

// ValidateCreate builds a user ready to insert, with its password hashed.
func (s *UserSerializer) ValidateCreate(ctx context.Context, input *UserInput) (*models.User, error) {
	verr := structErrors(s.Validate, input)

	if input.Username == nil {
		verr.add("username", TagRequired, "")
	}
	if input.Email == nil {
		verr.add("email", TagRequired, "")
	}
	if input.Password == nil {
		verr.add("password", TagRequired, "")
	}

	user := &models.User{CreatedAt: time.Now().UTC()}
	if _, err := s.apply(ctx, user, input, verr); err != nil {
		return nil, err
	}

	return user, nil
}

// ValidateUpdate applies input onto user and returns the columns it changed.
// Every field is optional when partial is set; otherwise username and email
// must be sent.
func (s *UserSerializer) ValidateUpdate(ctx context.Context, user *models.User, input *UserInput, partial bool) ([]string, error) {
	verr := structErrors(s.Validate, input)

	if !partial {
		if input.Username == nil {
			verr.add("username", TagRequired, "")
		}
		if input.Email == nil {
			verr.add("email", TagRequired, "")
		}
	}

	return s.apply(ctx, user, input, verr)
}

func (s *UserSerializer) apply(ctx context.Context, user *models.User, input *UserInput, verr *ValidationError) ([]string, error) {
	columns := make([]string, 0)

	if input.Username != nil && len(*input.Username) > 0 {
		taken, err := s.Users.UsernameTaken(ctx, *input.Username, user.Id)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.add("username", TagUnique, *input.Username)
		}
		user.Username = *input.Username
		columns = append(columns, "username")
	}

	if input.Email != nil && len(*input.Email) > 0 {
		taken, err := s.Users.EmailTaken(ctx, *input.Email, user.Id)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.add("email", TagUnique, *input.Email)
		}
		user.Email = *input.Email
		columns = append(columns, "email")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
		columns = append(columns, "first_name")
	}

	if input.LastName != nil {
		user.LastName = *input.LastName
		columns = append(columns, "last_name")
	}

	if input.StaffRole != nil && *input.StaffRole > 0 {
		_, err := s.Roles.GetRole(ctx, *input.StaffRole)
		switch {
		case errors.Is(err, repos.ErrNotFound):
			verr.add("staff_role", TagNotFound, strconv.FormatInt(*input.StaffRole, 10))
		case err != nil:
			return nil, err
		default:
			role := *input.StaffRole
			user.StaffRoleId = &role
			columns = append(columns, "staff_role_id")
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if input.Password != nil && len(*input.Password) > 0 {
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		columns = append(columns, "password")
	}

	return columns, nil
}
