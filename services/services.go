package services

import (
	"logpanel/repositories"
)

// Services holds all service instances
type Services struct {
	Logs LogService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Logs: NewLogService(repos.Logs),
	}
}
