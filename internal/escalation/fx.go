package escalation

import (
	"github.com/veriscan/casedesk/internal/escalation/repository"
	"github.com/veriscan/casedesk/internal/escalation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("escalation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
