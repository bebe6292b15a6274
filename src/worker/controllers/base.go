package controllers

import (
	"sync"

	"github.com/sirupsen/logrus"

	"tracker/src/scheduler"
	"tracker/src/services"
)

type Controller struct {
	PortfolioService services.PortfolioServiceI
	Logger           *logrus.Logger

	schedulerMutex sync.Mutex
	refreshTask    *scheduler.ScheduledTask
}

func NewController(portfolioService services.PortfolioServiceI, logger *logrus.Logger) *Controller {
	return &Controller{PortfolioService: portfolioService, Logger: logger}
}
