package agent

import (
	"github.com/sivajik34/aifastcommerce/internal/tools"
)

// Leaf is a bound (tool set, prompt) pair handling one business domain. Name
// must end in _agent; the response extraction policy keys on that suffix.
type Leaf struct {
	Name   string
	Prompt string
	Tools  []tools.Tool
}

// Team is a supervisor routing between its leaves.
type Team struct {
	Name   string
	Prompt string
	Leaves []Leaf
}

// Registry is the full agent hierarchy under the top-level router.
type Registry struct {
	Teams []Team
}

const routerPrompt = `You are the top-level router of an e-commerce admin assistant.
Route each request to the team that owns it:
- sales_supervisor: orders, shipments, invoices, cancellations
- catalog_supervisor: products, categories, stock and inventory
- customer_supervisor: customer accounts and their order history
- directory_supervisor: countries, regions, currencies
Transfer to exactly one team per request. Answer directly only for greetings
or questions about your own capabilities.`

const salesPrompt = `You supervise the sales team. Route order lookups, order
placement and cancellation to order_agent, shipments and tracking to
shipment_agent, invoicing to invoice_agent. When a customer record is needed
first, say so instead of guessing.`

const catalogPrompt = `You supervise the catalog team. Route product browsing
and CRUD to product_agent, category work to category_agent, stock levels and
low-stock reporting to stock_agent.`

const customerPrompt = `You supervise the customer team. Route account lookups,
account creation, and per-customer order history to customer_agent.`

const directoryPrompt = `You supervise the store directory team. Route country,
region, and currency questions to directory_agent.`

const leafPromptSuffix = `
Use your tools to answer. Report tool errors in plain language; never invent
data. When the work is done, reply with a concise summary for the user.`

// NewRegistry wires the default hierarchy over one commerce tool set.
func NewRegistry(ts *tools.Set) *Registry {
	return &Registry{Teams: []Team{
		{
			Name:   "sales_supervisor",
			Prompt: salesPrompt,
			Leaves: []Leaf{
				{Name: "order_agent", Prompt: "You handle sales orders: lookup, search, placement, cancellation." + leafPromptSuffix, Tools: ts.Order},
				{Name: "shipment_agent", Prompt: "You handle shipments and tracking records." + leafPromptSuffix, Tools: ts.Shipment},
				{Name: "invoice_agent", Prompt: "You handle order invoicing." + leafPromptSuffix, Tools: ts.Invoice},
			},
		},
		{
			Name:   "catalog_supervisor",
			Prompt: catalogPrompt,
			Leaves: []Leaf{
				{Name: "product_agent", Prompt: "You handle catalog products: view, search, create, update, delete." + leafPromptSuffix, Tools: ts.Product},
				{Name: "category_agent", Prompt: "You handle catalog categories and product-category assignment." + leafPromptSuffix, Tools: ts.Category},
				{Name: "stock_agent", Prompt: "You handle stock quantities and low-stock reporting." + leafPromptSuffix, Tools: ts.Stock},
			},
		},
		{
			Name:   "customer_supervisor",
			Prompt: customerPrompt,
			Leaves: []Leaf{
				{Name: "customer_agent", Prompt: "You handle customer accounts and their order history." + leafPromptSuffix, Tools: ts.Customer},
			},
		},
		{
			Name:   "directory_supervisor",
			Prompt: directoryPrompt,
			Leaves: []Leaf{
				{Name: "directory_agent", Prompt: "You answer store directory questions: countries, regions, currencies." + leafPromptSuffix, Tools: ts.Directory},
			},
		},
	}}
}

// findLeaf locates a leaf agent and its team by name.
func (r *Registry) findLeaf(name string) (*Team, *Leaf) {
	for ti := range r.Teams {
		for li := range r.Teams[ti].Leaves {
			if r.Teams[ti].Leaves[li].Name == name {
				return &r.Teams[ti], &r.Teams[ti].Leaves[li]
			}
		}
	}
	return nil, nil
}

func (r *Registry) findTeam(name string) *Team {
	for ti := range r.Teams {
		if r.Teams[ti].Name == name {
			return &r.Teams[ti]
		}
	}
	return nil
}
