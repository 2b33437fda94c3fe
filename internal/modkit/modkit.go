// Package modkit carries the shared wiring for composed service modules
package modkit

import (
	"classwatch/internal/platform/config"
	"classwatch/internal/platform/logger"
)

// Deps is the dependency bundle handed to every module constructor
type Deps struct {
	Cfg config.Conf
	Log *logger.Logger
}
