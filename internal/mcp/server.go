package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"catalog-gateway/internal/model"
	"catalog-gateway/internal/service"
)

// MCPServer exposes the catalog over the Model Context Protocol, so LLM
// clients can browse databases, tables and schemas through tool calls.
type MCPServer struct {
	catalogService service.CatalogService
	queryService   service.QueryService
	server         *server.MCPServer
}

// NewMCPServer creates an MCP server wrapping the catalog services.
func NewMCPServer(catalogService service.CatalogService, queryService service.QueryService, version string) *MCPServer {
	s := server.NewMCPServer("Catalog Gateway MCP Server", version)

	m := &MCPServer{
		catalogService: catalogService,
		queryService:   queryService,
		server:         s,
	}
	m.registerTools()
	return m
}

func (m *MCPServer) registerTools() {
	listDatabasesTool := mcp.NewTool("list_databases",
		mcp.WithDescription("List all configured databases"))
	m.server.AddTool(listDatabasesTool, m.handleListDatabases)

	listTablesTool := mcp.NewTool("list_tables",
		mcp.WithDescription("List tables in a database, paginated"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database label")),
		mcp.WithString("schema", mcp.Description("Schema filter; ignored by engines without schemas")),
		mcp.WithNumber("page", mcp.Description("Page number, 1-based, default 1")),
		mcp.WithNumber("limit", mcp.Description("Page size, default 50")))
	m.server.AddTool(listTablesTool, m.handleListTables)

	describeTableTool := mcp.NewTool("describe_table",
		mcp.WithDescription("Describe a table: columns, outgoing foreign keys and incoming foreign keys, merged into one paginated stream in that order"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database label")),
		mcp.WithString("table", mcp.Required(), mcp.Description("Table name")),
		mcp.WithString("schema", mcp.Description("Schema filter; ignored by engines without schemas")),
		mcp.WithNumber("page", mcp.Description("Page number, 1-based, default 1")),
		mcp.WithNumber("limit", mcp.Description("Page size, default 50")))
	m.server.AddTool(describeTableTool, m.handleDescribeTable)

	sampleTableTool := mcp.NewTool("sample_table",
		mcp.WithDescription("Return a few rows from a table"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database label")),
		mcp.WithString("table", mcp.Required(), mcp.Description("Table name")),
		mcp.WithString("schema", mcp.Description("Schema filter; ignored by engines without schemas")),
		mcp.WithNumber("limit", mcp.Description("Row count, default from configuration")))
	m.server.AddTool(sampleTableTool, m.handleSampleTable)

	executeQueryTool := mcp.NewTool("execute_query",
		mcp.WithDescription("Execute a read-only SELECT query against a database"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database label")),
		mcp.WithString("sql", mcp.Required(), mcp.Description("The SELECT statement to run")))
	m.server.AddTool(executeQueryTool, m.handleExecuteQuery)

	testConnectionTool := mcp.NewTool("test_connection",
		mcp.WithDescription("Test connectivity to a configured database"),
		mcp.WithString("database", mcp.Required(), mcp.Description("Database label")))
	m.server.AddTool(testConnectionTool, m.handleTestConnection)
}

func (m *MCPServer) handleListDatabases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databases, err := m.catalogService.ListDatabases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	return jsonResult(map[string]any{
		"databases": databases,
		"count":     len(databases),
	})
}

func (m *MCPServer) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := &model.CatalogRequest{
		Database: mcp.ParseString(request, "database", ""),
		Schema:   mcp.ParseString(request, "schema", ""),
		Page:     int(mcp.ParseInt(request, "page", 1)),
		Limit:    int(mcp.ParseInt(request, "limit", 50)),
	}

	listing, err := m.catalogService.ListTables(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return jsonResult(listing)
}

func (m *MCPServer) handleDescribeTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := &model.CatalogRequest{
		Database: mcp.ParseString(request, "database", ""),
		Table:    mcp.ParseString(request, "table", ""),
		Schema:   mcp.ParseString(request, "schema", ""),
		Page:     int(mcp.ParseInt(request, "page", 1)),
		Limit:    int(mcp.ParseInt(request, "limit", 50)),
	}

	result, err := m.catalogService.DescribeTable(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to describe table: %w", err)
	}
	return jsonResult(result)
}

func (m *MCPServer) handleSampleTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := m.catalogService.SampleTable(ctx,
		mcp.ParseString(request, "database", ""),
		mcp.ParseString(request, "table", ""),
		mcp.ParseString(request, "schema", ""),
		int(mcp.ParseInt(request, "limit", 0)))
	if err != nil {
		return nil, fmt.Errorf("failed to sample table: %w", err)
	}
	return jsonResult(result)
}

func (m *MCPServer) handleExecuteQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := m.queryService.ExecuteQuery(ctx,
		mcp.ParseString(request, "database", ""),
		mcp.ParseString(request, "sql", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return jsonResult(result)
}

func (m *MCPServer) handleTestConnection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := m.catalogService.TestConnection(ctx,
		mcp.ParseString(request, "database", ""))
	if err != nil {
		return nil, fmt.Errorf("connection test failed: %w", err)
	}
	return jsonResult(result)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
		},
	}, nil
}

// StartStdio serves MCP over stdio; it blocks until the client disconnects.
func (m *MCPServer) StartStdio() error {
	return server.ServeStdio(m.server)
}
