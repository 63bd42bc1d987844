// Package tripflow provides the tool registry and dispatch core for the
// Tripflow travel-planning MCP server.
//
// The package owns the pieces every tool shares: the Result envelope, the
// typed search criteria, the schema descriptor and its builder, the
// alias-aware parameter mapping helpers, date validation, the
// order-preserving Registry with its startup Builder, and the Dispatcher
// that normalizes every outcome into one reply shape.
//
// Domain behavior lives in subpackages and is injected at construction time:
//
//	import "github.com/petal-labs/tripflow/tools"    // concrete tool wiring
//	import "github.com/petal-labs/tripflow/booking"  // Booking.com services
//	import "github.com/petal-labs/tripflow/mcpserver" // stdio transport
package tripflow
