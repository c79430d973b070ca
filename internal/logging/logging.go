package logging

import "go.uber.org/zap"

// New builds the application logger. Release mode gets the production
// JSON encoder, everything else the development console encoder.
func New(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
