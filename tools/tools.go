// Package tools maps named operations onto the Drip API.
//
// Every operation reads its arguments from a loosely typed map (as decoded
// from JSON), validates and shapes them with the validate and mapper
// packages, performs the upstream call(s) and unwraps the response.
// Validation always happens before the first request is sent.
package tools

import (
	"context"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	drip "github.com/GravityKit/drip-mcp-server"
	"github.com/GravityKit/drip-mcp-server/api"
	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/logger"
)

// Client is the subset of *drip.Client the dispatcher needs.
type Client interface {
	Subscribers() *api.Subscribers
	Campaigns() *api.Campaigns
	Workflows() *api.Workflows
	Events() *api.Events
	Forms() *api.Forms
	Broadcasts() *api.Broadcasts
	Accounts() *api.Accounts
	Batch() *drip.Batch
}

var _ Client = &drip.Client{}

// Handler runs one operation. The result must be JSON-serializable.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool wraps an MCP tool definition with its handler.
type Tool struct {
	mcp.Tool        // Name, Description, InputSchema
	Group    string // subscribers, campaigns, workflows, ...
	Execute  Handler
}

const (
	GroupSubscribers = "subscribers"
	GroupCampaigns   = "campaigns"
	GroupWorkflows   = "workflows"
	GroupEvents      = "events"
	GroupForms       = "forms"
	GroupBroadcasts  = "broadcasts"
	GroupAccount     = "account"
)

// Dispatcher holds the fixed operation catalog.
type Dispatcher struct {
	client Client
	logger logger.Logger
	tools  []*Tool
	byName map[string]*Tool
}

func NewDispatcher(client Client, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Noop{}
	}
	d := &Dispatcher{
		client: client,
		logger: log,
	}

	for _, group := range [][]*Tool{
		d.subscriberTools(),
		d.unsubscribeTools(),
		d.campaignTools(),
		d.workflowTools(),
		d.eventTools(),
		d.formTools(),
		d.broadcastTools(),
		d.accountTools(),
	} {
		d.tools = append(d.tools, group...)
	}

	d.byName = make(map[string]*Tool, len(d.tools))
	for _, t := range d.tools {
		d.byName[t.Name] = t
	}
	return d
}

// Tools returns the catalog in registration order.
func (d *Dispatcher) Tools() []*Tool {
	return d.tools
}

// Names returns the sorted operation names.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.tools))
	for _, t := range d.tools {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) Lookup(name string) (*Tool, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// Invoke runs the named operation. Unknown names fail with
// errors.ErrUnknownOperation.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := d.byName[name]
	if !ok {
		return nil, errors.UnknownOperation(name)
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	res, err := t.Execute(ctx, args)
	if err != nil {
		d.logger.Warnf("tools: %s failed after %s: %v", name, time.Since(start), err)
		return nil, err
	}
	d.logger.Debugf("tools: %s done in %s", name, time.Since(start))
	return res, nil
}
