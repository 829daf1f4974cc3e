package service

import (
	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/repository"
)

type AuditService interface {
	List() ([]model.AuditLog, error)
	Get(id uint) (*model.AuditLog, error)
	Create(in *model.AuditLogInput, caller *uint) (*model.AuditLog, error)
	Update(id uint) error
	Delete(id uint) error
}

type auditService struct {
	repo     repository.AuditRepository
	userRepo repository.UserRepository
}

func NewAuditService(repo repository.AuditRepository, userRepo repository.UserRepository) AuditService {
	return &auditService{repo: repo, userRepo: userRepo}
}

func (s *auditService) List() ([]model.AuditLog, error) {
	entries, err := s.repo.FindAll()
	return entries, storeError("audit log", "list", err)
}

func (s *auditService) Get(id uint) (*model.AuditLog, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, storeError("audit log", "get", err)
	}
	return entry, nil
}

// Create appends an entry. The actor defaults to the caller.
func (s *auditService) Create(in *model.AuditLogInput, caller *uint) (*model.AuditLog, error) {
	verr := validate(in)
	actor := caller
	if in.User != nil {
		actor = in.User
		if _, err := s.userRepo.FindByID(*in.User); err != nil {
			if err := storeError("user", "get", err); !isNotFound(err) {
				return nil, err
			}
			verr.Add("user", "exists", "Invalid pk - object does not exist.")
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	entry := &model.AuditLog{UserID: actor, Action: in.Action, Details: in.Details}
	if err := s.repo.Create(entry); err != nil {
		return nil, storeError("audit log", "create", err)
	}
	return s.Get(entry.ID)
}

// Update rejects every modification of an existing entry.
func (s *auditService) Update(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return ErrImmutable
}

func (s *auditService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return storeError("audit log", "delete", err)
	}
	metrics.Deleted("audit_log", 1)
	return nil
}
