package services

import "github.com/vncsmyrnk/election/internal/core/domain"

type accessControl struct {
	admin domain.Address
}

func (a accessControl) requireAdmin(caller domain.Address) error {
	if caller != a.admin {
		return domain.ErrUnauthorized
	}
	return nil
}
