package main

import (
	"eplgraph/lib/pipeline"
	"eplgraph/services/coaches"
)

func main() {
	pipeline.Main("crawl-coaches", coaches.Run)
}
