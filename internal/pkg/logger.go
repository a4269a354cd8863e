package pkg

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Development mode gets the
// console encoder.
func NewLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
