package serializers

import (
	"github.com/devteams/devteams-server/models/employee"
	"github.com/go-playground/validator/v10"
)

// EmployeeInput is shared by developers and project managers. Team slots are
// not writable here.
type EmployeeInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
}

func (input *EmployeeInput) check(validate *validator.Validate, partial bool) error {
	verr := structErrors(validate, input)

	if !partial {
		if input.FirstName == nil {
			verr.add("first_name", TagRequired, "")
		}
		if input.LastName == nil {
			verr.add("last_name", TagRequired, "")
		}
	}

	return verr.orNil()
}

func (input *EmployeeInput) apply(firstName, lastName, email *string) {
	if input.FirstName != nil {
		*firstName = *input.FirstName
	}
	if input.LastName != nil {
		*lastName = *input.LastName
	}
	if input.Email != nil {
		*email = *input.Email
	}
}

// Developer validates input and writes it onto developer. partial allows the
// names to be left out.
func (input *EmployeeInput) Developer(validate *validator.Validate, developer *employee.Developer, partial bool) error {
	if err := input.check(validate, partial); err != nil {
		return err
	}
	input.apply(&developer.FirstName, &developer.LastName, &developer.Email)
	return nil
}

func (input *EmployeeInput) ProjectManager(validate *validator.Validate, manager *employee.ProjectManager, partial bool) error {
	if err := input.check(validate, partial); err != nil {
		return err
	}
	input.apply(&manager.FirstName, &manager.LastName, &manager.Email)
	return nil
}
