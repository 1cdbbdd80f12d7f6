package main

import (
	"eplgraph/lib/pipeline"
	"eplgraph/services/players"
)

func main() {
	pipeline.Main("crawl-players", players.Run)
}
