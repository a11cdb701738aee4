package organization

import (
	"github.com/veriscan/casedesk/internal/organization/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("organization",
	fx.Provide(repository.Provide),
)
