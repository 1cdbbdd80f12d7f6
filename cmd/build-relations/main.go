package main

import (
	"eplgraph/lib/pipeline"
	"eplgraph/services/relations"
)

func main() {
	pipeline.Main("build-relations", relations.Run)
}
