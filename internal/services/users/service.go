package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/pkg/security"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type UserStore interface {
	Create(ctx context.Context, tx pgx.Tx, username, email, passwordHash string) (pgrepo.UserRecord, error)
	GetByUsername(ctx context.Context, username string) (pgrepo.UserRecord, error)
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
}

type ProfileStore interface {
	Create(ctx context.Context, tx pgx.Tx, userID int64, role enums.Role, bio, location string) (pgrepo.ProfileRecord, error)
	CreateRecruiter(ctx context.Context, tx pgx.Tx, rec pgrepo.RecruiterProfileRecord) (pgrepo.RecruiterProfileRecord, error)
	CreateJobSeeker(ctx context.Context, tx pgx.Tx, rec pgrepo.JobSeekerProfileRecord) (pgrepo.JobSeekerProfileRecord, error)
	GetByUserID(ctx context.Context, userID int64) (pgrepo.ProfileRecord, error)
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Users    UserStore
	Profiles ProfileStore
}

type Service struct {
	users    UserStore
	profiles ProfileStore

	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
	now   func() time.Time
}

func NewService(deps Dependencies) (*Service, error) {
	if deps.Users == nil {
		return nil, fmt.Errorf("user store is nil")
	}
	if deps.Profiles == nil {
		return nil, fmt.Errorf("profile store is nil")
	}

	svc := &Service{
		users:    deps.Users,
		profiles: deps.Profiles,
		now:      time.Now,
	}
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return pgrepo.WithTx(ctx, deps.Pool, func(_ context.Context, tx pgx.Tx) error {
			return fn(tx)
		})
	}

	return svc, nil
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     enums.Role
	Bio      string
	Location string

	// Recruiter section, required when Role == RoleRecruiter.
	CompanyName string
	Position    string
	Industry    string

	// Job seeker section, required when Role == RoleJobSeeker.
	Skills          string
	ExperienceYears int
	DesiredPosition string
}

type RegisteredUser struct {
	UserID    int64
	ProfileID int64
	Role      enums.Role
	Username  string
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (RegisteredUser, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" || input.Email == "" {
		return RegisteredUser{}, fmt.Errorf("%w: username and email are required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return RegisteredUser{}, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if _, ok := enums.ParseRole(string(input.Role)); !ok {
		return RegisteredUser{}, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}
	if input.Role == enums.RoleRecruiter && strings.TrimSpace(input.CompanyName) == "" {
		return RegisteredUser{}, fmt.Errorf("%w: company name is required for recruiters", ErrValidation)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return RegisteredUser{}, fmt.Errorf("hash password: %w", err)
	}

	var result RegisteredUser
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		user, err := s.users.Create(ctx, tx, input.Username, input.Email, passwordHash)
		if err != nil {
			return err
		}

		profile, err := s.profiles.Create(ctx, tx, user.ID, input.Role, input.Bio, input.Location)
		if err != nil {
			return err
		}

		switch input.Role {
		case enums.RoleRecruiter:
			_, err = s.profiles.CreateRecruiter(ctx, tx, pgrepo.RecruiterProfileRecord{
				ProfileID:   profile.ID,
				CompanyName: strings.TrimSpace(input.CompanyName),
				Position:    strings.TrimSpace(input.Position),
				Industry:    strings.TrimSpace(input.Industry),
			})
		case enums.RoleJobSeeker:
			_, err = s.profiles.CreateJobSeeker(ctx, tx, pgrepo.JobSeekerProfileRecord{
				ProfileID:       profile.ID,
				Skills:          strings.TrimSpace(input.Skills),
				ExperienceYears: input.ExperienceYears,
				DesiredPosition: strings.TrimSpace(input.DesiredPosition),
			})
		}
		if err != nil {
			return err
		}

		result = RegisteredUser{
			UserID:    user.ID,
			ProfileID: profile.ID,
			Role:      input.Role,
			Username:  user.Username,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrUsernameTaken) {
			return RegisteredUser{}, ErrUsernameTaken
		}
		return RegisteredUser{}, fmt.Errorf("register user: %w", err)
	}

	return result, nil
}

// Authenticate verifies the username/password pair and returns the user with
// their base profile. Unknown users and wrong passwords are indistinguishable
// to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (pgrepo.UserRecord, pgrepo.ProfileRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, ErrInvalidCredentials
		}
		return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, fmt.Errorf("load user: %w", err)
	}

	if err := security.CheckPassword(user.PasswordHash, password); err != nil {
		return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, fmt.Errorf("load profile: %w", err)
	}

	return user, profile, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (pgrepo.UserRecord, pgrepo.ProfileRecord, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, ErrUserNotFound
		}
		return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, fmt.Errorf("load user: %w", err)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return pgrepo.UserRecord{}, pgrepo.ProfileRecord{}, fmt.Errorf("load profile: %w", err)
	}

	return user, profile, nil
}
