package handlers

import (
	"github.com/cassiozaleski/sercarne-V8.0/services"
)

var (
	engine      *services.Gateway
	feed        *services.SheetFeed
	horizonDays int
)

// InitializeHandlers wires the shared engine into the handler package.
func InitializeHandlers(g *services.Gateway, f *services.SheetFeed, horizon int) {
	engine = g
	feed = f
	horizonDays = horizon
}
