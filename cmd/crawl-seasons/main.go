package main

import (
	"eplgraph/lib/pipeline"
	"eplgraph/services/seasons"
)

func main() {
	pipeline.Main("crawl-seasons", seasons.Run)
}
