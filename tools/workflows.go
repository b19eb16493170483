package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GravityKit/drip-mcp-server/mapper"
	"github.com/GravityKit/drip-mcp-server/validate"
)

const workflowsKey = "workflows"

func (d *Dispatcher) workflowTools() []*Tool {
	idSchema := func() map[string]any {
		return schema(map[string]any{"workflow_id": idProp("Workflow id.")}, "workflow_id")
	}
	startProps := subscriberProps()
	startProps["workflow_id"] = idProp("Workflow id.")

	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "list_workflows",
				Description: "List automation workflows.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(withPaging(map[string]any{
					"status": strProp("all, draft, active or paused."),
				})),
			},
			Group:   GroupWorkflows,
			Execute: d.listWorkflows,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_workflow",
				Description: "Fetch one workflow.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: idSchema(),
			},
			Group:   GroupWorkflows,
			Execute: d.getWorkflow,
		},
		{
			Tool: mcp.Tool{
				Name:        "activate_workflow",
				Description: "Activate a workflow.",
				InputSchema: idSchema(),
			},
			Group:   GroupWorkflows,
			Execute: d.activateWorkflow,
		},
		{
			Tool: mcp.Tool{
				Name:        "pause_workflow",
				Description: "Pause a workflow.",
				InputSchema: idSchema(),
			},
			Group:   GroupWorkflows,
			Execute: d.pauseWorkflow,
		},
		{
			Tool: mcp.Tool{
				Name: "start_workflow_for_subscriber",
				Description: "Start a subscriber on a workflow, creating the subscriber if needed. " +
					"Extra properties are stored as custom fields.",
				InputSchema: schema(startProps, "workflow_id", "email"),
			},
			Group:   GroupWorkflows,
			Execute: d.startWorkflow,
		},
		{
			Tool: mcp.Tool{
				Name:        "remove_from_workflow",
				Description: "Remove a subscriber from a workflow.",
				InputSchema: schema(map[string]any{
					"workflow_id": idProp("Workflow id."),
					"id_or_email": idProp("Subscriber id or email address."),
				}, "workflow_id", "id_or_email"),
			},
			Group:   GroupWorkflows,
			Execute: d.removeFromWorkflow,
		},
	}
}

func (d *Dispatcher) listWorkflows(ctx context.Context, args map[string]any) (any, error) {
	query, err := readListQuery(args, "page", "per_page", "sort", "direction", "status")
	if err != nil {
		return nil, err
	}
	return d.client.Workflows().List(ctx, query)
}

func (d *Dispatcher) getWorkflow(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "workflow_id", true)
	if err != nil {
		return nil, err
	}
	res, err := d.client.Workflows().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return first(res, workflowsKey), nil
}

func (d *Dispatcher) activateWorkflow(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "workflow_id", true)
	if err != nil {
		return nil, err
	}
	return success(d.client.Workflows().Activate(ctx, id))
}

func (d *Dispatcher) pauseWorkflow(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "workflow_id", true)
	if err != nil {
		return nil, err
	}
	return success(d.client.Workflows().Pause(ctx, id))
}

func (d *Dispatcher) startWorkflow(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "workflow_id", true)
	if err != nil {
		return nil, err
	}
	email, err := validate.Email(args["email"])
	if err != nil {
		return nil, err
	}

	input := without(args, "workflow_id")
	input["email"] = email
	subscriber, err := mapper.FormatSubscriber(input)
	if err != nil {
		return nil, err
	}

	res, err := d.client.Workflows().Start(ctx, id, subscriber)
	if err != nil {
		return nil, err
	}
	return firstOrSuccess(res, subscribersKey), nil
}

func (d *Dispatcher) removeFromWorkflow(ctx context.Context, args map[string]any) (any, error) {
	workflowId, err := readString(args, "workflow_id", true)
	if err != nil {
		return nil, err
	}
	subscriber, err := readString(args, "id_or_email", true)
	if err != nil {
		return nil, err
	}
	return success(d.client.Workflows().RemoveSubscriber(ctx, workflowId, subscriber))
}
