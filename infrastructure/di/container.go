package di

import (
	"pledgeboard-backend/application/ports"
	querybus "pledgeboard-backend/application/queries/bus"
	"pledgeboard-backend/infrastructure/config"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	SessionRepo ports.SessionRepository
	QueryBus    *querybus.QueryBus
	Cache       ports.Cache
}
