package endpoints

import (
	"github.com/taabirhq/taabir/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Outline endpoints
		&OutlineEndpoint{},
		&EnforceOutlineEndpoint{},

		// Generation stages
		&DraftEndpoint{},
		NewSummaryEndpoint(),
		NewReviewEndpoint(),
		NewBalanceEndpoint(),
		NewHumanTouchEndpoint(),
		NewExpandCasesEndpoint(),

		// Quality endpoints
		&QualityReportEndpoint{},
		&QualityGateEndpoint{},

		// Meta endpoints
		&MetaEndpoint{},
		&JSONLDEndpoint{},

		// Cleanup and export
		&CleanupEndpoint{},
		&ExportDOCXEndpoint{},
		&ExportPDFEndpoint{},
		&ExportEPUBEndpoint{},

		// Prompt listing
		&ListPromptsEndpoint{},
	}
}
