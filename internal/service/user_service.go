package service

import (
	"fmt"

	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserService interface {
	List() ([]model.User, error)
	Get(id uint) (*model.User, error)
	Create(in *model.UserInput, actor *uint) (*model.User, error)
	Update(id uint, in *model.UserInput, actor *uint) (*model.User, error)
	Delete(id uint, actor *uint) error
	Bootstrap() (bool, error)

	ListProfiles() ([]model.UserProfile, error)
	GetProfile(id uint) (*model.UserProfile, error)
	CreateProfile(in *model.UserProfileInput) (*model.UserProfile, error)
	UpdateProfile(id uint, in *model.UserProfileInput) (*model.UserProfile, error)
	DeleteProfile(id uint) error
}

type userService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokenRepo   repository.TokenRepository
	auditRepo   repository.AuditRepository
	db          *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{
		userRepo:    repository.NewUserRepo(db),
		profileRepo: repository.NewProfileRepo(db),
		tokenRepo:   repository.NewTokenRepo(db),
		auditRepo:   repository.NewAuditRepo(db),
		db:          db,
	}
}

func (s *userService) List() ([]model.User, error) {
	users, err := s.userRepo.FindAll()
	return users, storeError("user", "list", err)
}

func (s *userService) Get(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, storeError("user", "get", err)
	}
	return user, nil
}

// usernameTaken reports whether another user (not exceptID) already holds username.
func (s *userService) usernameTaken(username string, exceptID uint) (bool, error) {
	other, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if err := storeError("user", "get", err); !isNotFound(err) {
			return false, err
		}
		return false, nil
	}
	return other.ID != exceptID, nil
}

func writeAudit(tx *gorm.DB, actor *uint, action, details string) error {
	return repository.NewAuditRepo(tx).Create(&model.AuditLog{UserID: actor, Action: action, Details: details})
}

// Create stores the user and its profile together. The profile starts as
// an active admin unless the request overrides role or status.
func (s *userService) Create(in *model.UserInput, actor *uint) (*model.User, error) {
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	taken, err := s.usernameTaken(in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{Message: "A user with that username already exists."}
	}

	user := &model.User{}
	in.Apply(user)
	profile := &model.UserProfile{Role: model.DefaultRole, Status: model.DefaultStatus}
	in.UserProfile.Apply(profile)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := s.profileRepo.WithTx(tx).Create(profile); err != nil {
			return err
		}
		return writeAudit(tx, actor, model.ActionUserCreated, fmt.Sprintf("username=%s role=%s", user.Username, profile.Role))
	})
	if err != nil {
		return nil, storeError("user", "create", err)
	}
	user.Profile = profile
	return user, nil
}

// Update saves the user and always saves its profile, recreating a missing one.
func (s *userService) Update(id uint, in *model.UserInput, actor *uint) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validate(in).Err(); err != nil {
		return nil, err
	}
	taken, err := s.usernameTaken(in.Username, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{Message: "A user with that username already exists."}
	}

	in.Apply(user)
	profile := user.Profile
	if profile == nil {
		profile = &model.UserProfile{UserID: user.ID, Role: model.DefaultRole, Status: model.DefaultStatus}
	}
	in.UserProfile.Apply(profile)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Update(user); err != nil {
			return err
		}
		profiles := s.profileRepo.WithTx(tx)
		save := profiles.Update
		if profile.ID == 0 {
			save = profiles.Create
		}
		if err := save(profile); err != nil {
			return err
		}
		return writeAudit(tx, actor, model.ActionUserUpdated, fmt.Sprintf("username=%s role=%s", user.Username, profile.Role))
	})
	if err != nil {
		return nil, storeError("user", "update", err)
	}
	user.Profile = profile
	return user, nil
}

// Delete removes the user with its profile and token. Audit entries keep
// their text but lose the actor reference.
func (s *userService) Delete(id uint, actor *uint) error {
	if actor != nil && *actor == id {
		actor = nil
	}
	var username string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		user, err := users.FindByID(id)
		if err != nil {
			return err
		}
		username = user.Username
		if err := s.tokenRepo.WithTx(tx).DeleteByUser(id); err != nil {
			return err
		}
		if err := s.auditRepo.WithTx(tx).DetachUser(id); err != nil {
			return err
		}
		if err := s.profileRepo.WithTx(tx).DeleteByUser(id); err != nil {
			return err
		}
		if err := users.Delete(id); err != nil {
			return err
		}
		return writeAudit(tx, actor, model.ActionUserDeleted, "username="+username)
	})
	if err != nil {
		return storeError("user", "delete", err)
	}
	metrics.Deleted("user", 1)
	log.Info().Uint("user_id", id).Str("username", username).Msg("user deleted")
	return nil
}

// Bootstrap creates the reserved admin when it does not exist yet.
// It reports whether a user was created.
func (s *userService) Bootstrap() (bool, error) {
	taken, err := s.usernameTaken(model.ReservedAdmin.Username, 0)
	if err != nil {
		return false, err
	}
	if taken {
		return false, nil
	}

	role := model.RoleAdmin
	seed := model.ReservedAdmin
	in := seed.Input()
	in.UserProfile = &model.ProfileInput{Role: &role}
	user, err := s.Create(&in, nil)
	if err != nil {
		return false, err
	}
	log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("reserved admin created")
	return true, nil
}

func (s *userService) ListProfiles() ([]model.UserProfile, error) {
	profiles, err := s.profileRepo.FindAll()
	return profiles, storeError("user profile", "list", err)
}

func (s *userService) GetProfile(id uint) (*model.UserProfile, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		return nil, storeError("user profile", "get", err)
	}
	return profile, nil
}

// checkProfile validates in and that its user exists and has no other profile.
func (s *userService) checkProfile(in *model.UserProfileInput, profileID uint) error {
	verr := validate(in)
	if in.User != 0 {
		if _, err := s.Get(in.User); err != nil {
			if !isNotFound(err) {
				return err
			}
			verr.Add("user", "exists", "Invalid pk - object does not exist.")
		}
	}
	if err := verr.Err(); err != nil {
		return err
	}

	existing, err := s.profileRepo.FindByUserID(in.User)
	if err != nil {
		if err := storeError("user profile", "get", err); !isNotFound(err) {
			return err
		}
		return nil
	}
	if existing.ID != profileID {
		return &ConflictError{Message: "user profile with this user already exists."}
	}
	return nil
}

func (s *userService) CreateProfile(in *model.UserProfileInput) (*model.UserProfile, error) {
	if err := s.checkProfile(in, 0); err != nil {
		return nil, err
	}
	profile := &model.UserProfile{UserID: in.User, Role: in.Role, Status: in.Status}
	if profile.Status == "" {
		profile.Status = model.DefaultStatus
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, storeError("user profile", "create", err)
	}
	return profile, nil
}

func (s *userService) UpdateProfile(id uint, in *model.UserProfileInput) (*model.UserProfile, error) {
	profile, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}
	if in.User != 0 && in.User != profile.UserID {
		verr := validate(in)
		verr.Add("user", "immutable", "A profile cannot be moved to another user.")
		return nil, verr
	}
	if err := s.checkProfile(in, id); err != nil {
		return nil, err
	}
	profile.UserID = in.User
	profile.Role = in.Role
	profile.Status = in.Status
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, storeError("user profile", "update", err)
	}
	return profile, nil
}

// DeleteProfile always fails for an existing profile: a profile is removed with its user.
func (s *userService) DeleteProfile(id uint) error {
	if _, err := s.GetProfile(id); err != nil {
		return err
	}
	return &ConflictError{Message: "A profile is deleted together with its user."}
}
