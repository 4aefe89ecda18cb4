package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	maxPasswordBytes = 72 // bcrypt ignores anything past this
	maxPriority      = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type registerRules struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"max=100"`
	Role     string `json:"role" validate:"omitempty,alphanum,max=32"`
}

type taskRules struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    int    `json:"priority" validate:"gte=0,lte=10"`
}

// normalizeEmail lowercases and trims; the login key is compared in this form everywhere.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validateRegistration returns a cleaned copy of in or a *tt.ValidationError.
func validateRegistration(in RegisterInput) (RegisterInput, error) {
	out := RegisterInput{
		Email:    normalizeEmail(in.Email),
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		Role:     strings.ToLower(strings.TrimSpace(in.Role)),
	}
	verr := collect(validate.Struct(registerRules(out)))
	checkPasswordShape(verr, "password", out.Password)
	if out.Role == "" {
		out.Role = models.RoleUser
	}
	if err := verr.OrNil(); err != nil {
		return RegisterInput{}, err
	}
	return out, nil
}

// validatePassword applies the registration password rules to a replacement password.
func validatePassword(field, pw string) error {
	verr := collectAs(field, validate.Var(pw, "required,min=6"))
	checkPasswordShape(verr, field, pw)
	return verr.OrNil()
}

func checkPasswordShape(verr *tt.ValidationError, field, pw string) {
	if pw != "" && strings.TrimSpace(pw) == "" {
		verr.Add(field, "must not be blank")
	}
	if len(pw) > maxPasswordBytes {
		verr.Add(field, fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
}

func validateTaskInput(in TaskInput) (TaskInput, error) {
	out := in
	out.Title = strings.TrimSpace(in.Title)
	out.Description = strings.TrimSpace(in.Description)
	out.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	if out.Status == "" {
		out.Status = models.StatusTodo
	}
	prio := 0
	if in.Priority != nil {
		prio = *in.Priority
	}
	out.Priority = &prio
	out.DueDate = truncateDay(in.DueDate)

	rules := taskRules{Title: out.Title, Description: out.Description, Status: out.Status, Priority: prio}
	if err := collect(validate.Struct(rules)).OrNil(); err != nil {
		return TaskInput{}, err
	}
	return out, nil
}

func validateTaskPatch(p TaskPatch) (TaskPatch, error) {
	var (
		out  = p
		verr = &tt.ValidationError{}
	)
	if p.Title != nil {
		s := strings.TrimSpace(*p.Title)
		out.Title = &s
		mergeInto(verr, collectAs("title", validate.Var(s, "required,max=200")))
	}
	if p.Description != nil {
		s := strings.TrimSpace(*p.Description)
		out.Description = &s
		mergeInto(verr, collectAs("description", validate.Var(s, "max=2000")))
	}
	if p.Status != nil {
		s := strings.ToUpper(strings.TrimSpace(*p.Status))
		out.Status = &s
		if !models.ValidStatus(s) {
			verr.Add("status", "must be one of TODO IN_PROGRESS DONE")
		}
	}
	if p.Priority != nil {
		mergeInto(verr, collectAs("priority", validate.Var(*p.Priority, "gte=0,lte=10")))
	}
	if p.ClearDueDate && p.DueDate != nil {
		verr.Add("due_date", "cannot set and clear in the same update")
	}
	out.DueDate = truncateDay(p.DueDate)
	if err := verr.OrNil(); err != nil {
		return TaskPatch{}, err
	}
	return out, nil
}

func validateTaskFilter(f TaskFilter) (TaskFilter, error) {
	out := TaskFilter{DueDate: truncateDay(f.DueDate), Priority: f.Priority}
	verr := &tt.ValidationError{}
	if f.Priority != nil && (*f.Priority < 0 || *f.Priority > maxPriority) {
		verr.Add("priority", fmt.Sprintf("must be between 0 and %d", maxPriority))
	}
	if s := strings.ToUpper(strings.TrimSpace(f.Status)); s != "" {
		if !models.ValidStatus(s) {
			verr.Add("status", "must be one of TODO IN_PROGRESS DONE")
		}
		out.Status = s
	}
	if err := verr.OrNil(); err != nil {
		return TaskFilter{}, err
	}
	return out, nil
}

func truncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

// collect converts validator output into a ValidationError keyed by json field name.
func collect(err error) *tt.ValidationError {
	verr := &tt.ValidationError{}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) {
		for _, fe := range fes {
			verr.Add(fe.Field(), describe(fe))
		}
	}
	return verr
}

// collectAs is collect for validate.Var, whose errors carry no field name.
func collectAs(field string, err error) *tt.ValidationError {
	verr := &tt.ValidationError{}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) {
		for _, fe := range fes {
			verr.Add(field, describe(fe))
		}
	}
	return verr
}

func mergeInto(dst, src *tt.ValidationError) {
	for k, v := range src.Fields {
		dst.Add(k, v)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return "must be one of " + fe.Param()
	case "alphanum":
		return "must be alphanumeric"
	default:
		return "is invalid"
	}
}
