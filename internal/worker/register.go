// Package worker wires the recommendation workflows and activities into a
// Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/activity"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/orchestrator"
	"github.com/RakeshEPC/tshla-medical-sub000/internal/workflow"
)

// RegisterAll registers the recommendation workflows and activities with a
// Temporal worker. Call once during worker startup before Run.
func RegisterAll(w sdkworker.Worker, engine *orchestrator.Engine) {
	activities := activity.NewActivities(engine)

	w.RegisterWorkflow(workflow.RecommendationWorkflow)
	w.RegisterWorkflow(workflow.FollowUpWorkflow)

	w.RegisterActivity(activities.Recommend)
	w.RegisterActivity(activities.AnswerFollowUp)
}
