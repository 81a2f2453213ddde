package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all tuplecheck MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("check_tuples",
		mcp.WithDescription("Find single-item tuples missing their trailing comma in Python code, e.g. x = (\"item\") instead of x = (\"item\",)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code (file or directory) to check")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively check directories (default: true)")),
		mcp.WithBoolean("check_call_args",
			mcp.Description("Check double-parenthesized call arguments like f((x)) (default: true)")),
		mcp.WithBoolean("check_assignments",
			mcp.Description("Check assignment values like x = (y) (default: true)")),
		mcp.WithBoolean("check_comparisons",
			mcp.Description("Check comparison operands like x in (\"A\") (default: true)")),
		mcp.WithBoolean("check_comprehensions",
			mcp.Description("Check comprehension bodies like [(y) for y in xs] (default: true)")),
	), HandleCheckTuples)
}
