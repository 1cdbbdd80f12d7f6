package main

import (
	"eplgraph/cmd/eplgraph-cli/commands"
	"eplgraph/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
