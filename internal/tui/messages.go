package tui

import (
	"github.com/jask/vehicledesk/internal/api"
	"github.com/jask/vehicledesk/internal/catalog"
)

type refreshedMsg struct {
	model      catalog.RenderModel
	collection []api.Vehicle
	err        error
}

type actionMsg struct {
	outcome catalog.Outcome
}

type detailMsg struct {
	id  int64
	v   api.Vehicle
	err error
}

type loggedOutMsg struct {
	err error
}

type configSavedMsg struct {
	baseURL string
	err     error
}

type noticeExpiredMsg struct {
	seq int
}
