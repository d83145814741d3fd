package cli

import "gen-machineconf/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
