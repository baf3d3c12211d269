package main

// General API documentation for swaggo. Run `make swagger-gen` to regenerate docs.
//
// @title           agentd API
// @version         1.0
// @description     HTTP API for MCP-backed agent execution and task polling.
//
// @contact.name   agentd maintainers
// @contact.url    https://github.com/your-org/agentd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http https
