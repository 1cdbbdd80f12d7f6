package main

import (
	"eplgraph/lib/pipeline"
	"eplgraph/services/clubs"
)

func main() {
	pipeline.Main("crawl-clubs", clubs.Run)
}
