package controllers

import (
	"kitesync/src/repositories"
	"kitesync/src/services"
)

type Controller struct {
	AuthService services.KiteAuthServiceI
	SyncService services.SyncServiceI
	UserRepo    repositories.UserRepository
}

func NewController(authService services.KiteAuthServiceI, syncService services.SyncServiceI, userRepo repositories.UserRepository) *Controller {
	return &Controller{
		AuthService: authService,
		SyncService: syncService,
		UserRepo:    userRepo,
	}
}
