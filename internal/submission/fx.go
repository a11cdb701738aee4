package submission

import (
	"github.com/veriscan/casedesk/internal/submission/repository"
	"github.com/veriscan/casedesk/internal/submission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("submission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
